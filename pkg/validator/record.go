package validator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

// Record holds the validated values of one input. Records are immutable
// unless their validator was created with WithMutation; concurrent Set
// calls on one record need external synchronization.
type Record struct {
	schema    *schema.Schema
	values    []any
	validator *Validator
}

func (r *Record) Schema() *schema.Schema { return r.schema }
func (r *Record) Len() int               { return len(r.values) }

// Names returns the field names in declaration order.
func (r *Record) Names() []string { return r.schema.Names() }

// Get returns the value of a declared field. Absent optional fields are
// reported as (nil, true); undeclared names as (nil, false). Lists and maps
// are returned as copies.
func (r *Record) Get(name string) (any, bool) {
	i := r.schema.Index(name)
	if i < 0 {
		return nil, false
	}
	return schema.CloneValue(r.values[i]), true
}

// At returns a copy of the value of the i-th declared field.
func (r *Record) At(i int) any { return schema.CloneValue(r.values[i]) }

// IsNull reports whether a declared field holds no value.
func (r *Record) IsNull(name string) bool {
	v, ok := r.Get(name)
	return ok && v == nil
}

// Values returns a copy of the values keyed by field name.
func (r *Record) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, f := range r.schema.Fields() {
		out[f.Name()] = schema.CloneValue(r.values[i])
	}
	return out
}

// Value returns a field value asserted to T.
//
//	id, ok := validator.Value[int64](rec, "id")
func Value[T any](r *Record, name string) (T, bool) {
	var zero T
	v, ok := r.Get(name)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

// Typed accessors return the zero value when the field is undeclared, null or
// of another kind.

func (r *Record) Int(name string) int64 {
	v, _ := Value[int64](r, name)
	return v
}

func (r *Record) Float(name string) float64 {
	v, _ := Value[float64](r, name)
	return v
}

func (r *Record) Text(name string) string {
	v, _ := Value[string](r, name)
	return v
}

func (r *Record) Bool(name string) bool {
	v, _ := Value[bool](r, name)
	return v
}

func (r *Record) Time(name string) time.Time {
	v, _ := Value[time.Time](r, name)
	return v
}

func (r *Record) List(name string) []any {
	v, _ := Value[[]any](r, name)
	return v
}

func (r *Record) Map(name string) map[string]any {
	v, _ := Value[map[string]any](r, name)
	return v
}

// Object returns a nested record.
func (r *Record) Object(name string) *Record {
	v, _ := Value[*Record](r, name)
	return v
}

// Set replaces one field value after running its coercion, constraint and hook
// chain against the current values of earlier fields. On failure the record
// is unchanged and the Report is returned.
func (r *Record) Set(name string, raw any) error {
	if r.validator == nil || !r.validator.mutable {
		return ErrImmutableRecord
	}
	i := r.schema.Index(name)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}

	valid := make([]bool, len(r.values))
	for j := range valid {
		valid[j] = true
	}
	view := View{schema: r.schema, values: r.values, valid: valid, limit: i}

	val, report := r.validator.field(r.schema.FieldAt(i), raw, view)
	if len(report) > 0 {
		return report
	}
	r.values[i] = val
	return nil
}

// Equal reports whether both records share a schema and hold equal values.
// Timestamps are compared with time.Time.Equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.schema != other.schema || len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		if !equalValues(r.values[i], other.values[i]) {
			return false
		}
	}
	return true
}

func equalValues(a, b any) bool {
	switch x := a.(type) {
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case *Record:
		y, ok := b.(*Record)
		return ok && x.Equal(y)
	case []any:
		y, ok := b.([]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalValues(x[i], y[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		y, ok := b.(map[string]any)
		if !ok || len(x) != len(y) {
			return false
		}
		for k, xv := range x {
			yv, ok := y[k]
			if !ok || !equalValues(xv, yv) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}

// String renders the record as name{field=value ...}.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteString(r.schema.Name())
	b.WriteByte('{')
	for i, f := range r.schema.Fields() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Name())
		b.WriteByte('=')
		b.WriteString(formatValue(r.values[i]))
	}
	b.WriteByte('}')
	return b.String()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case *Record:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = formatValue(item)
		}
		return "[" + strings.Join(parts, " ") + "]"
	}
	return fmt.Sprint(v)
}
