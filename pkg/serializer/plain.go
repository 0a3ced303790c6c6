package serializer

import (
	"maps"
	"slices"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/modelkit/pkg/validator"
)

// Plain is the ordered plain form of a record.
type Plain = orderedmap.OrderedMap[string, any]

// ToPlain converts rec into an ordered map following field declaration order.
// Nested records become nested ordered maps and mapping values are emitted
// with sorted keys.
func ToPlain(rec *validator.Record) *Plain {
	out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](rec.Len()))
	for i, name := range rec.Names() {
		out.Set(name, plainValue(rec.At(i)))
	}
	return out
}

func plainValue(v any) any {
	switch x := v.(type) {
	case *validator.Record:
		return ToPlain(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = plainValue(item)
		}
		return out
	case map[string]any:
		out := orderedmap.New[string, any](orderedmap.WithCapacity[string, any](len(x)))
		for _, k := range slices.Sorted(maps.Keys(x)) {
			out.Set(k, plainValue(x[k]))
		}
		return out
	}
	return v
}

// FromPlain validates a plain tree. It accepts map[string]any and ordered maps
// produced by ToPlain.
func FromPlain(v *validator.Validator, plain any) (*validator.Record, error) {
	m, ok := unorder(plain).(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return v.Validate(m)
}

// unorder replaces ordered maps by plain maps, recursively.
func unorder(v any) any {
	switch x := v.(type) {
	case *Plain:
		if x == nil {
			return nil
		}
		out := make(map[string]any, x.Len())
		for pair := x.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = unorder(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = unorder(item)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = unorder(item)
		}
		return out
	}
	return v
}
