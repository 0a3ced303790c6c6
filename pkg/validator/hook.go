package validator

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Hook is a custom rule run after type coercion and constraints. It receives
// the current value and a view of the fields declared earlier in the schema.
// It returns the value to keep, which may be transformed, or an error to
// reject the value with a RuleViolation. A returned value must be canonical
// for the field type (int64 for int, []any for lists, and so on); anything
// else is reported as a RuleViolation.
type Hook func(value any, prior View) (any, error)

// Hooks maps field names to hooks run in registration order.
type Hooks map[string][]Hook

// View is a read-only window over the fields already validated when a hook runs.
// Only fields declared before the current one are visible; fields that failed
// validation are not.
type View struct {
	schema *schema.Schema
	values []any
	valid  []bool
	limit  int
}

// Get returns a copy of the validated value of an earlier field.
func (v View) Get(name string) (any, bool) {
	if v.schema == nil {
		return nil, false
	}
	i := v.schema.Index(name)
	if i < 0 || i >= v.limit || !v.valid[i] {
		return nil, false
	}
	return schema.CloneValue(v.values[i]), true
}

// Names lists the visible fields in declaration order.
func (v View) Names() []string {
	var names []string
	for i := 0; i < v.limit; i++ {
		if v.valid[i] {
			names = append(names, v.schema.FieldAt(i).Name())
		}
	}
	return names
}

// RuleError is a hook failure carrying translation metadata.
type RuleError struct {
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

func (e *RuleError) Error() string { return e.Message }

// Violation rejects a value with msg.
func Violation(msg string) error {
	return &RuleError{Message: msg, TranslationKey: "validation.rule"}
}

func Violationf(format string, args ...any) error {
	return Violation(fmt.Sprintf(format, args...))
}

// Check adapts a predicate into a hook that keeps the value unchanged.
// Nil values are passed without calling fn.
func Check[T any](fn func(value T, prior View) bool, msg string) Hook {
	return func(value any, prior View) (any, error) {
		if value == nil {
			return nil, nil
		}
		typed, ok := value.(T)
		if !ok {
			return value, nil
		}
		if !fn(typed, prior) {
			return nil, Violation(msg)
		}
		return value, nil
	}
}

// TransformString applies fns to string values in order. Other values pass
// unchanged.
func TransformString(fns ...func(string) string) Hook {
	return func(value any, _ View) (any, error) {
		s, ok := value.(string)
		if !ok {
			return value, nil
		}
		for _, fn := range fns {
			s = fn(s)
		}
		return s, nil
	}
}

// TransformFloat applies fns to float values in order.
func TransformFloat(fns ...func(float64) float64) Hook {
	return func(value any, _ View) (any, error) {
		f, ok := value.(float64)
		if !ok {
			return value, nil
		}
		for _, fn := range fns {
			f = fn(f)
		}
		return f, nil
	}
}

func ruleIssue(path string, err error) Issue {
	var re *RuleError
	if errors.As(err, &re) {
		values := map[string]any{"field": path, "message": re.Message}
		for k, v := range re.TranslationValues {
			values[k] = v
		}
		key := re.TranslationKey
		if key == "" {
			key = "validation.rule"
		}
		return Issue{
			Field:             path,
			Kind:              RuleViolation,
			Message:           re.Message,
			TranslationKey:    key,
			TranslationValues: values,
		}
	}
	return Issue{
		Field:             path,
		Kind:              RuleViolation,
		Message:           err.Error(),
		TranslationKey:    "validation.rule",
		TranslationValues: map[string]any{"field": path, "message": err.Error()},
	}
}
