package validator

import (
	"fmt"
	"time"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// conforms reports whether v is a canonical value of t.
func conforms(t schema.Type, v any) bool {
	switch t.Kind() {
	case schema.KindOptional:
		if v == nil {
			return true
		}
		elem, _ := t.Elem()
		return conforms(elem, v)
	case schema.KindUnion:
		for _, m := range t.Members() {
			if conforms(m, v) {
				return true
			}
		}
		return false
	}

	switch x := v.(type) {
	case int64:
		return t.Kind() == schema.KindInt
	case float64:
		return t.Kind() == schema.KindFloat
	case string:
		return t.Kind() == schema.KindString
	case bool:
		return t.Kind() == schema.KindBool
	case time.Time:
		return t.Kind() == schema.KindTimestamp
	case *Record:
		return t.Kind() == schema.KindObject && x != nil && x.schema == t.Schema()
	case []any:
		if t.Kind() != schema.KindList || x == nil {
			return false
		}
		elem, _ := t.Elem()
		for _, item := range x {
			if !conforms(elem, item) {
				return false
			}
		}
		return true
	case map[string]any:
		if t.Kind() != schema.KindMap || x == nil {
			return false
		}
		elem, _ := t.Elem()
		for _, item := range x {
			if !conforms(elem, item) {
				return false
			}
		}
		return true
	}
	return false
}

func hookResultIssue(path string, t schema.Type, v any) Issue {
	return Issue{
		Field:          path,
		Kind:           RuleViolation,
		Message:        fmt.Sprintf("rule returned %s, expected %s", describeRaw(v), t),
		TranslationKey: "validation.rule_result",
		TranslationValues: map[string]any{
			"field":    path,
			"expected": t.String(),
			"value":    describeRaw(v),
		},
	}
}
