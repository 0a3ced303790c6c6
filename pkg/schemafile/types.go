package schemafile

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

var scalarTypes = map[string]schema.Type{
	"int":       schema.Int(),
	"integer":   schema.Int(),
	"float":     schema.Float(),
	"number":    schema.Float(),
	"string":    schema.String(),
	"str":       schema.String(),
	"bool":      schema.Bool(),
	"boolean":   schema.Bool(),
	"timestamp": schema.Timestamp(),
	"datetime":  schema.Timestamp(),
}

// ParseType parses a type expression such as "list<optional<int>>",
// "map<string,float>", "union<int|string>" or "object:item". Object
// references are resolved in named.
func ParseType(expr string, named map[string]*schema.Schema) (schema.Type, error) {
	expr = strings.TrimSpace(expr)

	if t, ok := scalarTypes[strings.ToLower(expr)]; ok {
		return t, nil
	}

	if ref, ok := strings.CutPrefix(expr, "object:"); ok {
		s, ok := named[strings.TrimSpace(ref)]
		if !ok {
			return schema.Type{}, fmt.Errorf("%w: %q", ErrUnknownSchema, ref)
		}
		return schema.Object(s), nil
	}

	open := strings.IndexByte(expr, '<')
	if open < 0 || !strings.HasSuffix(expr, ">") {
		return schema.Type{}, fmt.Errorf("%w: %q", ErrUnknownType, expr)
	}
	head := strings.ToLower(strings.TrimSpace(expr[:open]))
	inner := expr[open+1 : len(expr)-1]

	switch head {
	case "list", "optional":
		elem, err := ParseType(inner, named)
		if err != nil {
			return schema.Type{}, err
		}
		if head == "list" {
			return schema.List(elem), nil
		}
		return schema.Optional(elem), nil
	case "map":
		parts, err := split(inner, ',')
		if err != nil {
			return schema.Type{}, err
		}
		if len(parts) != 2 {
			return schema.Type{}, fmt.Errorf("%w: map needs key and value types in %q", ErrUnknownType, expr)
		}
		key, err := ParseType(parts[0], named)
		if err != nil {
			return schema.Type{}, err
		}
		value, err := ParseType(parts[1], named)
		if err != nil {
			return schema.Type{}, err
		}
		return schema.Map(key, value), nil
	case "union":
		parts, err := split(inner, '|')
		if err != nil {
			return schema.Type{}, err
		}
		members := make([]schema.Type, 0, len(parts))
		for _, p := range parts {
			m, err := ParseType(p, named)
			if err != nil {
				return schema.Type{}, err
			}
			members = append(members, m)
		}
		return schema.Union(members...), nil
	}
	return schema.Type{}, fmt.Errorf("%w: %q", ErrUnknownType, expr)
}

// split cuts s at sep outside of angle brackets.
func split(s string, sep byte) ([]string, error) {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrUnknownType, s)
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("%w: unbalanced brackets in %q", ErrUnknownType, s)
	}
	return append(parts, s[start:]), nil
}
