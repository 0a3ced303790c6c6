package schema

import (
	"strings"
	"time"
)

// Kind identifies the shape of a Type.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
	KindTimestamp
	KindList
	KindMap
	KindOptional
	KindUnion
	KindObject
)

var kindNames = map[Kind]string{
	KindInvalid:   "invalid",
	KindInt:       "int",
	KindFloat:     "float",
	KindString:    "string",
	KindBool:      "bool",
	KindTimestamp: "timestamp",
	KindList:      "list",
	KindMap:       "map",
	KindOptional:  "optional",
	KindUnion:     "union",
	KindObject:    "object",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// IsScalar reports whether values of the kind carry no nested values.
func (k Kind) IsScalar() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindBool, KindTimestamp:
		return true
	}
	return false
}

// Type describes the expected type of a field or of a nested value.
// Types are values; composite constructors copy their arguments.
type Type struct {
	kind        Kind
	elem        *Type
	key         *Type
	members     []Type
	object      *Schema
	constraints []Constraint
}

func Int() Type       { return Type{kind: KindInt} }
func Float() Type     { return Type{kind: KindFloat} }
func String() Type    { return Type{kind: KindString} }
func Bool() Type      { return Type{kind: KindBool} }
func Timestamp() Type { return Type{kind: KindTimestamp} }

// List declares a list whose elements are of type elem.
func List(elem Type) Type {
	return Type{kind: KindList, elem: &elem}
}

// Map declares a mapping from key to value. Only string and int keys are
// supported; Describe rejects anything else.
func Map(key, value Type) Type {
	return Type{kind: KindMap, key: &key, elem: &value}
}

// Optional declares a value that may be null.
func Optional(inner Type) Type {
	return Type{kind: KindOptional, elem: &inner}
}

// Union declares a value matching any of the member types. Members are tried
// in the given order.
func Union(members ...Type) Type {
	return Type{kind: KindUnion, members: append([]Type(nil), members...)}
}

// Object declares a nested record validated against s.
func Object(s *Schema) Type {
	return Type{kind: KindObject, object: s}
}

// With returns a copy of t carrying additional constraints. Type level
// constraints apply to list elements, map values and union members.
func (t Type) With(constraints ...Constraint) Type {
	out := t
	out.constraints = append(append([]Constraint(nil), t.constraints...), constraints...)
	return out
}

func (t Type) Kind() Kind { return t.kind }

// Elem returns the element type of a list, the value type of a map or the
// inner type of an optional.
func (t Type) Elem() (Type, bool) {
	if t.elem == nil {
		return Type{}, false
	}
	return *t.elem, true
}

// Key returns the key type of a map.
func (t Type) Key() (Type, bool) {
	if t.key == nil {
		return Type{}, false
	}
	return *t.key, true
}

// Members returns the union member types in declaration order.
func (t Type) Members() []Type {
	return append([]Type(nil), t.members...)
}

// Schema returns the nested schema of an object type.
func (t Type) Schema() *Schema { return t.object }

// Constraints returns the type level constraints.
func (t Type) Constraints() []Constraint {
	return append([]Constraint(nil), t.constraints...)
}

// Base unwraps optional layers.
func (t Type) Base() Type {
	for t.kind == KindOptional && t.elem != nil {
		t = *t.elem
	}
	return t
}

func (t Type) String() string {
	switch t.kind {
	case KindList:
		return "list<" + t.elem.String() + ">"
	case KindMap:
		return "map<" + t.key.String() + "," + t.elem.String() + ">"
	case KindOptional:
		return "optional<" + t.elem.String() + ">"
	case KindUnion:
		names := make([]string, len(t.members))
		for i, m := range t.members {
			names[i] = m.String()
		}
		return "union<" + strings.Join(names, "|") + ">"
	case KindObject:
		if t.object != nil && t.object.Name() != "" {
			return "object:" + t.object.Name()
		}
		return "object"
	}
	return t.kind.String()
}

// KindOf reports the kind of a canonical validated value.
func KindOf(v any) Kind {
	switch v.(type) {
	case int64:
		return KindInt
	case float64:
		return KindFloat
	case string:
		return KindString
	case bool:
		return KindBool
	case time.Time:
		return KindTimestamp
	case []any:
		return KindList
	case map[string]any:
		return KindMap
	case nil:
		return KindInvalid
	}
	return KindObject
}
