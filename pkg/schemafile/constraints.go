package schemafile

import (
	"fmt"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// parseConstraint reads either a bare name ("email") or a single-key mapping
// ({min_len: 2}).
func parseConstraint(n *yaml.Node) (schema.Constraint, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Value {
		case "email":
			return schema.Email(), nil
		case "url":
			return schema.URL(), nil
		case "uuid":
			return schema.UUID(), nil
		case "unique_items":
			return schema.UniqueItems(), nil
		}
		return schema.Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraint, n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return schema.Constraint{}, fmt.Errorf("%w: constraint mapping must have exactly one key (line %d)", ErrInvalidDocument, n.Line)
		}
		return keyedConstraint(n.Content[0].Value, n.Content[1])
	}
	return schema.Constraint{}, fmt.Errorf("%w: constraint must be a name or a mapping (line %d)", ErrInvalidDocument, n.Line)
}

func keyedConstraint(name string, arg *yaml.Node) (schema.Constraint, error) {
	switch name {
	case "min_len", "max_len", "decimal_places":
		var n int
		if err := arg.Decode(&n); err != nil {
			return schema.Constraint{}, argError(name, arg, "an integer")
		}
		switch name {
		case "min_len":
			return schema.MinLen(n), nil
		case "max_len":
			return schema.MaxLen(n), nil
		}
		return schema.DecimalPlaces(n), nil
	case "min", "max", "gt", "lt":
		var f float64
		if err := arg.Decode(&f); err != nil {
			return schema.Constraint{}, argError(name, arg, "a number")
		}
		switch name {
		case "min":
			return schema.Min(f), nil
		case "max":
			return schema.Max(f), nil
		case "gt":
			return schema.Gt(f), nil
		}
		return schema.Lt(f), nil
	case "one_of":
		var values []any
		if err := arg.Decode(&values); err != nil || len(values) == 0 {
			return schema.Constraint{}, argError(name, arg, "a non-empty list")
		}
		return schema.OneOf(values...), nil
	case "pattern":
		re, err := regexp.Compile(arg.Value)
		if arg.Kind != yaml.ScalarNode || err != nil {
			return schema.Constraint{}, argError(name, arg, "a valid regular expression")
		}
		return schema.Pattern(re), nil
	case "after", "before":
		ts, err := time.Parse(time.RFC3339Nano, arg.Value)
		if arg.Kind != yaml.ScalarNode || err != nil {
			return schema.Constraint{}, argError(name, arg, "an RFC 3339 timestamp")
		}
		if name == "after" {
			return schema.After(ts), nil
		}
		return schema.Before(ts), nil
	}
	return schema.Constraint{}, fmt.Errorf("%w: %q", ErrUnknownConstraint, name)
}

func argError(name string, arg *yaml.Node, want string) error {
	return fmt.Errorf("%w: %s needs %s, got %q (line %d)", ErrInvalidDocument, name, want, arg.Value, arg.Line)
}
