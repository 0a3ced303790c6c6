package serializer

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// intKeyPattern matches the keys of map<int,V> values.
const intKeyPattern = `^-?\d+$`

// JSONSchema exports s as a JSON Schema document. Properties keep declaration
// order; nested object schemas are emitted once under $defs and referenced.
func JSONSchema(s *schema.Schema) *jsonschema.Schema {
	defs := make(jsonschema.Definitions)
	root := objectSchema(s, defs)
	root.Version = jsonschema.Version
	if len(defs) > 0 {
		root.Definitions = defs
	}
	return root
}

func objectSchema(s *schema.Schema, defs jsonschema.Definitions) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:       "object",
		Title:      s.Name(),
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}
	for _, f := range s.Fields() {
		prop := typeSchema(f.Type(), defs)
		applyConstraints(prop, f.Type(), f.Constraints())
		prop.Description = f.Description()
		if f.HasDefault() && !f.HasDefaultFunc() {
			prop.Default = plainValue(f.Default())
		}
		out.Properties.Set(f.Name(), prop)
		if f.Required() {
			out.Required = append(out.Required, f.Name())
		}
	}
	return out
}

func typeSchema(t schema.Type, defs jsonschema.Definitions) *jsonschema.Schema {
	var out *jsonschema.Schema
	switch t.Kind() {
	case schema.KindInt:
		out = &jsonschema.Schema{Type: "integer"}
	case schema.KindFloat:
		out = &jsonschema.Schema{Type: "number"}
	case schema.KindString:
		out = &jsonschema.Schema{Type: "string"}
	case schema.KindBool:
		out = &jsonschema.Schema{Type: "boolean"}
	case schema.KindTimestamp:
		out = &jsonschema.Schema{Type: "string", Format: "date-time"}
	case schema.KindList:
		elem, _ := t.Elem()
		out = &jsonschema.Schema{Type: "array", Items: typeSchema(elem, defs)}
	case schema.KindMap:
		key, _ := t.Key()
		elem, _ := t.Elem()
		out = &jsonschema.Schema{Type: "object", AdditionalProperties: typeSchema(elem, defs)}
		if key.Kind() == schema.KindInt {
			out.PropertyNames = &jsonschema.Schema{Pattern: intKeyPattern}
		}
	case schema.KindOptional:
		elem, _ := t.Elem()
		out = &jsonschema.Schema{AnyOf: []*jsonschema.Schema{
			typeSchema(elem, defs),
			{Type: "null"},
		}}
	case schema.KindUnion:
		out = &jsonschema.Schema{}
		for _, m := range t.Members() {
			out.AnyOf = append(out.AnyOf, typeSchema(m, defs))
		}
	case schema.KindObject:
		s := t.Schema()
		if s.Name() == "" {
			out = objectSchema(s, defs)
			break
		}
		if _, ok := defs[s.Name()]; !ok {
			defs[s.Name()] = objectSchema(s, defs)
		}
		out = &jsonschema.Schema{Ref: "#/$defs/" + s.Name()}
	default:
		out = &jsonschema.Schema{}
	}
	applyConstraints(out, t, t.Constraints())
	return out
}

// applyConstraints maps constraints to validation keywords on node. JSON
// Schema keywords only apply to instances of their own type, so they are
// safe on optional and union nodes.
func applyConstraints(node *jsonschema.Schema, t schema.Type, cs []schema.Constraint) {
	kinds := baseKinds(t)
	for _, c := range cs {
		params := c.Params()
		switch c.Name() {
		case "min_len", "max_len":
			var n uint64
			if c.Name() == "min_len" {
				n = uint64(params["min"].(int))
			} else {
				n = uint64(params["max"].(int))
			}
			setLength(node, kinds, c.Name() == "min_len", n)
		case "min":
			node.Minimum = number(params["min"])
		case "max":
			node.Maximum = number(params["max"])
		case "gt":
			node.ExclusiveMinimum = number(params["gt"])
		case "lt":
			node.ExclusiveMaximum = number(params["lt"])
		case "one_of":
			if values, ok := params["allowed_values"].([]any); ok {
				node.Enum = values
			}
		case "pattern":
			node.Pattern, _ = params["pattern"].(string)
		case "email":
			node.Format = "email"
		case "url":
			node.Format = "uri"
		case "uuid":
			node.Format = "uuid"
		case "decimal_places":
			places, _ := params["places"].(int)
			node.MultipleOf = json.Number(decimal.New(1, -int32(places)).String())
		case "unique_items":
			node.UniqueItems = true
		case "after", "before":
			if ts, ok := params["time"].(time.Time); ok {
				extra(node, "x-"+c.Name(), ts.Format(time.RFC3339Nano))
			}
		}
	}
}

func setLength(node *jsonschema.Schema, kinds map[schema.Kind]bool, lower bool, n uint64) {
	if kinds[schema.KindString] {
		if lower {
			node.MinLength = &n
		} else {
			node.MaxLength = &n
		}
	}
	if kinds[schema.KindList] {
		if lower {
			node.MinItems = &n
		} else {
			node.MaxItems = &n
		}
	}
	if kinds[schema.KindMap] {
		if lower {
			node.MinProperties = &n
		} else {
			node.MaxProperties = &n
		}
	}
}

func baseKinds(t schema.Type) map[schema.Kind]bool {
	kinds := make(map[schema.Kind]bool)
	var walk func(schema.Type)
	walk = func(t schema.Type) {
		t = t.Base()
		if t.Kind() == schema.KindUnion {
			for _, m := range t.Members() {
				walk(m)
			}
			return
		}
		kinds[t.Kind()] = true
	}
	walk(t)
	return kinds
}

func number(v any) json.Number {
	f, _ := v.(float64)
	return json.Number(strconv.FormatFloat(f, 'f', -1, 64))
}

func extra(node *jsonschema.Schema, key string, value any) {
	if node.Extras == nil {
		node.Extras = make(map[string]any)
	}
	node.Extras[key] = value
}
