package schema

import (
	"fmt"
	"maps"
	"reflect"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// formats backs the Email and URL constraints. validator.Validate is safe for
// concurrent use once built.
var formats = playground.New()

// Constraint is a named predicate over a validated value. It carries the
// message and translation metadata used when it fails.
type Constraint struct {
	name    string
	kinds   []Kind
	check   func(v any) bool
	message string
	key     string
	params  map[string]any
}

// NewConstraint creates a custom constraint applying to the given kinds.
// The translation key is "validation.<name>".
func NewConstraint(name, message string, check func(v any) bool, kinds ...Kind) Constraint {
	return Constraint{
		name:    name,
		kinds:   kinds,
		check:   check,
		message: message,
		key:     "validation." + name,
	}
}

func (c Constraint) Name() string           { return c.name }
func (c Constraint) Message() string        { return c.message }
func (c Constraint) TranslationKey() string { return c.key }

// Params returns a copy of the constraint parameters.
func (c Constraint) Params() map[string]any {
	return maps.Clone(c.params)
}

// Kinds returns the kinds the constraint applies to.
func (c Constraint) Kinds() []Kind {
	return slices.Clone(c.kinds)
}

// AppliesTo reports whether the constraint can judge values of kind k.
func (c Constraint) AppliesTo(k Kind) bool {
	return slices.Contains(c.kinds, k)
}

// Check reports whether v satisfies the constraint. Nil values and values of a
// kind the constraint does not apply to pass.
func (c Constraint) Check(v any) bool {
	if v == nil || c.check == nil {
		return true
	}
	if !c.AppliesTo(KindOf(v)) {
		return true
	}
	return c.check(v)
}

func length(v any) int {
	switch val := v.(type) {
	case string:
		return utf8.RuneCountInString(val)
	case []any:
		return len(val)
	case map[string]any:
		return len(val)
	}
	return 0
}

func number(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

var sized = []Kind{KindString, KindList, KindMap}
var numeric = []Kind{KindInt, KindFloat}

// MinLen requires at least n characters for strings or n items for lists and maps.
func MinLen(n int) Constraint {
	return Constraint{
		name:    "min_len",
		kinds:   sized,
		check:   func(v any) bool { return length(v) >= n },
		message: fmt.Sprintf("length must be at least %d", n),
		key:     "validation.min_length",
		params:  map[string]any{"min": n},
	}
}

// MaxLen requires at most n characters for strings or n items for lists and maps.
func MaxLen(n int) Constraint {
	return Constraint{
		name:    "max_len",
		kinds:   sized,
		check:   func(v any) bool { return length(v) <= n },
		message: fmt.Sprintf("length must be at most %d", n),
		key:     "validation.max_length",
		params:  map[string]any{"max": n},
	}
}

// Min requires a number greater than or equal to min.
func Min(min float64) Constraint {
	return Constraint{
		name:    "min",
		kinds:   numeric,
		check:   func(v any) bool { return number(v) >= min },
		message: fmt.Sprintf("must be at least %v", min),
		key:     "validation.min",
		params:  map[string]any{"min": min},
	}
}

// Max requires a number less than or equal to max.
func Max(max float64) Constraint {
	return Constraint{
		name:    "max",
		kinds:   numeric,
		check:   func(v any) bool { return number(v) <= max },
		message: fmt.Sprintf("must be at most %v", max),
		key:     "validation.max",
		params:  map[string]any{"max": max},
	}
}

// Gt requires a number strictly greater than bound.
func Gt(bound float64) Constraint {
	return Constraint{
		name:    "gt",
		kinds:   numeric,
		check:   func(v any) bool { return number(v) > bound },
		message: fmt.Sprintf("must be greater than %v", bound),
		key:     "validation.gt",
		params:  map[string]any{"gt": bound},
	}
}

// Lt requires a number strictly less than bound.
func Lt(bound float64) Constraint {
	return Constraint{
		name:    "lt",
		kinds:   numeric,
		check:   func(v any) bool { return number(v) < bound },
		message: fmt.Sprintf("must be less than %v", bound),
		key:     "validation.lt",
		params:  map[string]any{"lt": bound},
	}
}

// OneOf requires the value to equal one of the allowed scalars. Go integer
// values are compared as int64.
func OneOf(allowed ...any) Constraint {
	values := make([]any, len(allowed))
	labels := make([]string, len(allowed))
	for i, a := range allowed {
		values[i] = normalizeScalar(a)
		labels[i] = fmt.Sprint(a)
	}
	return Constraint{
		name:  "one_of",
		kinds: []Kind{KindString, KindInt, KindFloat, KindBool},
		check: func(v any) bool {
			for _, a := range values {
				if a == v {
					return true
				}
				// int64 allowed values also match integral floats.
				if i, ok := a.(int64); ok {
					if f, ok := v.(float64); ok && float64(i) == f {
						return true
					}
				}
			}
			return false
		},
		message: "must be one of: " + strings.Join(labels, ", "),
		key:     "validation.in_list",
		params:  map[string]any{"allowed_values": values},
	}
}

// Pattern requires a string matching re.
func Pattern(re *regexp.Regexp) Constraint {
	return Constraint{
		name:    "pattern",
		kinds:   []Kind{KindString},
		check:   func(v any) bool { return re.MatchString(v.(string)) },
		message: fmt.Sprintf("must match pattern %s", re.String()),
		key:     "validation.pattern",
		params:  map[string]any{"pattern": re.String()},
	}
}

// Email requires a valid e-mail address.
func Email() Constraint {
	return Constraint{
		name:  "email",
		kinds: []Kind{KindString},
		check: func(v any) bool {
			return formats.Var(v.(string), "required,email") == nil
		},
		message: "must be a valid email address",
		key:     "validation.email",
	}
}

// URL requires an absolute URL.
func URL() Constraint {
	return Constraint{
		name:  "url",
		kinds: []Kind{KindString},
		check: func(v any) bool {
			return formats.Var(v.(string), "required,url") == nil
		},
		message: "must be a valid URL",
		key:     "validation.url",
	}
}

// UUID requires a canonical hyphenated UUID string.
func UUID() Constraint {
	return Constraint{
		name:  "uuid",
		kinds: []Kind{KindString},
		check: func(v any) bool {
			s := v.(string)
			// uuid.Parse also accepts urn and braced forms.
			if len(s) != 36 {
				return false
			}
			_, err := uuid.Parse(s)
			return err == nil
		},
		message: "must be a valid UUID",
		key:     "validation.uuid",
	}
}

// DecimalPlaces limits the number of digits after the decimal point.
func DecimalPlaces(places int) Constraint {
	return Constraint{
		name:  "decimal_places",
		kinds: numeric,
		check: func(v any) bool {
			f, ok := v.(float64)
			if !ok {
				return true
			}
			return decimal.NewFromFloat(f).Exponent() >= -int32(places)
		},
		message: fmt.Sprintf("must have at most %d decimal places", places),
		key:     "validation.decimal_places",
		params:  map[string]any{"places": places},
	}
}

// After requires a timestamp strictly after t.
func After(t time.Time) Constraint {
	return Constraint{
		name:    "after",
		kinds:   []Kind{KindTimestamp},
		check:   func(v any) bool { return v.(time.Time).After(t) },
		message: "must be after " + t.Format(time.RFC3339),
		key:     "validation.after",
		params:  map[string]any{"time": t},
	}
}

// Before requires a timestamp strictly before t.
func Before(t time.Time) Constraint {
	return Constraint{
		name:    "before",
		kinds:   []Kind{KindTimestamp},
		check:   func(v any) bool { return v.(time.Time).Before(t) },
		message: "must be before " + t.Format(time.RFC3339),
		key:     "validation.before",
		params:  map[string]any{"time": t},
	}
}

// UniqueItems requires list elements to be pairwise distinct.
func UniqueItems() Constraint {
	return Constraint{
		name:  "unique_items",
		kinds: []Kind{KindList},
		check: func(v any) bool {
			items := v.([]any)
			for i := range items {
				for j := i + 1; j < len(items); j++ {
					if reflect.DeepEqual(items[i], items[j]) {
						return false
					}
				}
			}
			return true
		},
		message: "must not contain duplicate items",
		key:     "validation.unique_items",
	}
}

// normalizeScalar widens Go numeric types to the canonical int64 / float64.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int8:
		return int64(n)
	case int16:
		return int64(n)
	case int32:
		return int64(n)
	case uint8:
		return int64(n)
	case uint16:
		return int64(n)
	case uint32:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}
