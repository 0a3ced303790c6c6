package schema

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"time"
)

var fieldNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Field declares one named attribute of a schema. Fields are created with
// Describe and are immutable afterwards.
type Field struct {
	name        string
	typ         Type
	required    bool
	hasDefault  bool
	def         any
	defFunc     func() any
	constraints []Constraint
	description string
}

// FieldOption configures a field in Describe.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	required    bool
	hasDefault  bool
	def         any
	defFunc     func() any
	constraints []Constraint
	description string
}

// Required marks the field as mandatory in the input.
func Required() FieldOption {
	return func(c *fieldConfig) { c.required = true }
}

// Default sets the value used when the field is absent. Defaults are trusted:
// they skip coercion, constraints and hooks.
func Default(v any) FieldOption {
	return func(c *fieldConfig) {
		c.hasDefault = true
		c.def = v
	}
}

// DefaultFunc sets a factory producing the default for every validation,
// e.g. time.Now for creation timestamps.
func DefaultFunc(fn func() any) FieldOption {
	return func(c *fieldConfig) { c.defFunc = fn }
}

// Constraints appends constraints evaluated in the given order.
func Constraints(cs ...Constraint) FieldOption {
	return func(c *fieldConfig) { c.constraints = append(c.constraints, cs...) }
}

// Description attaches documentation exported with the schema.
func Description(s string) FieldOption {
	return func(c *fieldConfig) { c.description = s }
}

// Describe creates a field descriptor.
//
// Example:
//
//	name, err := schema.Describe("name", schema.String(),
//		schema.Required(),
//		schema.Constraints(schema.MinLen(2)),
//	)
func Describe(name string, typ Type, opts ...FieldOption) (Field, error) {
	var cfg fieldConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if !fieldNameRe.MatchString(name) {
		return Field{}, fmt.Errorf("%w: invalid field name %q", ErrInvalidDescriptor, name)
	}
	if err := checkType(typ); err != nil {
		return Field{}, fmt.Errorf("%w: field %q: %v", ErrInvalidDescriptor, name, err)
	}
	if cfg.required && (cfg.hasDefault || cfg.defFunc != nil) {
		return Field{}, fmt.Errorf("%w: field %q is required and cannot have a default", ErrInvalidDescriptor, name)
	}
	if cfg.hasDefault && cfg.defFunc != nil {
		return Field{}, fmt.Errorf("%w: field %q has both a default value and a default factory", ErrInvalidDescriptor, name)
	}

	f := Field{
		name:        name,
		typ:         typ,
		required:    cfg.required,
		hasDefault:  cfg.hasDefault || cfg.defFunc != nil,
		defFunc:     cfg.defFunc,
		constraints: slices.Clone(cfg.constraints),
		description: cfg.description,
	}

	if cfg.hasDefault {
		def, ok := normalizeValue(typ, cfg.def)
		if !ok {
			return Field{}, fmt.Errorf("%w: field %q: default %#v does not match type %s", ErrInvalidDescriptor, name, cfg.def, typ)
		}
		f.def = def
	}
	if cfg.defFunc != nil {
		if _, err := f.ResolveDefault(); err != nil {
			return Field{}, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
	}

	for _, c := range f.constraints {
		if !applicable(c, typ) {
			return Field{}, fmt.Errorf("%w: field %q: constraint %s does not apply to type %s", ErrInvalidDescriptor, name, c.Name(), typ)
		}
	}

	return f, nil
}

// MustDescribe is like Describe but panics on error. Intended for
// package level schema declarations.
func MustDescribe(name string, typ Type, opts ...FieldOption) Field {
	f, err := Describe(name, typ, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f Field) Name() string        { return f.name }
func (f Field) Type() Type          { return f.typ }
func (f Field) Required() bool      { return f.required }
func (f Field) HasDefault() bool    { return f.hasDefault }
func (f Field) Description() string { return f.description }

// HasDefaultFunc reports whether the default is produced by a factory.
func (f Field) HasDefaultFunc() bool { return f.defFunc != nil }

// Default returns a copy of the default value, invoking the default factory
// if set. A factory result that does not match the field type yields nil;
// use ResolveDefault to get the error instead.
func (f Field) Default() any {
	v, _ := f.ResolveDefault()
	return v
}

// ResolveDefault is like Default but fails with ErrDefaultMismatch when the
// default factory returns a value of the wrong type.
func (f Field) ResolveDefault() (any, error) {
	if f.defFunc == nil {
		return CloneValue(f.def), nil
	}
	raw := f.defFunc()
	v, ok := normalizeValue(f.typ, raw)
	if !ok {
		return nil, fmt.Errorf("%w: field %q: factory returned %#v for type %s", ErrDefaultMismatch, f.name, raw, f.typ)
	}
	return v, nil
}

// Constraints returns the field constraints in evaluation order.
func (f Field) Constraints() []Constraint {
	return slices.Clone(f.constraints)
}

func checkType(t Type) error {
	switch t.kind {
	case KindInt, KindFloat, KindString, KindBool, KindTimestamp:
	case KindList, KindOptional:
		if t.elem == nil {
			return fmt.Errorf("%s type has no element type", t.kind)
		}
		if err := checkType(*t.elem); err != nil {
			return err
		}
	case KindMap:
		if t.key == nil || t.elem == nil {
			return fmt.Errorf("map type needs key and value types")
		}
		if k := t.key.kind; k != KindString && k != KindInt {
			return fmt.Errorf("unsupported map key type %s", t.key)
		}
		if err := checkType(*t.elem); err != nil {
			return err
		}
	case KindUnion:
		if len(t.members) < 2 {
			return fmt.Errorf("union needs at least two member types")
		}
		for _, m := range t.members {
			if err := checkType(m); err != nil {
				return err
			}
		}
	case KindObject:
		if t.object == nil {
			return fmt.Errorf("object type has no schema")
		}
	default:
		return fmt.Errorf("invalid type")
	}

	for _, c := range t.constraints {
		if !applicable(c, t) {
			return fmt.Errorf("constraint %s does not apply to type %s", c.Name(), t)
		}
	}
	return nil
}

// applicable reports whether c can judge some value of type t.
func applicable(c Constraint, t Type) bool {
	t = t.Base()
	if t.kind == KindUnion {
		for _, m := range t.members {
			if applicable(c, m) {
				return true
			}
		}
		return false
	}
	return c.AppliesTo(t.kind)
}

// normalizeValue converts a Go value into the canonical representation of t.
// It does not apply constraints. Object values cannot be expressed here.
func normalizeValue(t Type, v any) (any, bool) {
	switch t.kind {
	case KindOptional:
		if v == nil {
			return nil, true
		}
		return normalizeValue(*t.elem, v)
	case KindUnion:
		for _, m := range t.members {
			if out, ok := normalizeValue(m, v); ok {
				return out, true
			}
		}
		return nil, false
	}
	if v == nil {
		return nil, false
	}

	switch t.kind {
	case KindInt:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return rv.Int(), true
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if rv.Uint() > math.MaxInt64 {
				return nil, false
			}
			return int64(rv.Uint()), true
		}
	case KindFloat:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return rv.Float(), true
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return float64(rv.Int()), true
		}
	case KindString:
		s, ok := v.(string)
		return s, ok
	case KindBool:
		b, ok := v.(bool)
		return b, ok
	case KindTimestamp:
		ts, ok := v.(time.Time)
		return ts, ok
	case KindList:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice {
			return nil, false
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			item, ok := normalizeValue(*t.elem, rv.Index(i).Interface())
			if !ok {
				return nil, false
			}
			out[i] = item
		}
		return out, true
	case KindMap:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, ok := normalizeValue(*t.elem, iter.Value().Interface())
			if !ok {
				return nil, false
			}
			out[iter.Key().String()] = item
		}
		return out, true
	}
	return nil, false
}
