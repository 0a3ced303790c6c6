package schema_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

func TestConstraints(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		constraint schema.Constraint
		valid      []any
		invalid    []any
	}{
		{
			name:       "min length counts runes",
			constraint: schema.MinLen(2),
			valid:      []any{"ab", "ñá", []any{1, 2}, map[string]any{"a": 1, "b": 2}},
			invalid:    []any{"a", "", []any{1}, map[string]any{}},
		},
		{
			name:       "max length",
			constraint: schema.MaxLen(3),
			valid:      []any{"abc", []any{}},
			invalid:    []any{"abcd", []any{1, 2, 3, 4}},
		},
		{
			name:       "min",
			constraint: schema.Min(0),
			valid:      []any{int64(0), 0.5},
			invalid:    []any{int64(-1), -0.1},
		},
		{
			name:       "max",
			constraint: schema.Max(120),
			valid:      []any{int64(120)},
			invalid:    []any{int64(121), 120.5},
		},
		{
			name:       "greater than",
			constraint: schema.Gt(0),
			valid:      []any{0.01, int64(1)},
			invalid:    []any{0.0, int64(0)},
		},
		{
			name:       "less than",
			constraint: schema.Lt(10),
			valid:      []any{9.99},
			invalid:    []any{int64(10)},
		},
		{
			name:       "one of",
			constraint: schema.OneOf("electronica", "ropa", 3),
			valid:      []any{"ropa", int64(3), 3.0},
			invalid:    []any{"Ropa", int64(4)},
		},
		{
			name:       "pattern",
			constraint: schema.Pattern(regexp.MustCompile(`^\+?\d{9,15}$`)),
			valid:      []any{"+34600111222"},
			invalid:    []any{"600-111"},
		},
		{
			name:       "email",
			constraint: schema.Email(),
			valid:      []any{"juan@example.com"},
			invalid:    []any{"juan", "juan@", ""},
		},
		{
			name:       "url",
			constraint: schema.URL(),
			valid:      []any{"https://example.com/path"},
			invalid:    []any{"example", ""},
		},
		{
			name:       "uuid",
			constraint: schema.UUID(),
			valid:      []any{"6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
			invalid:    []any{"6ba7b8109dad11d180b400c04fd430c8", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", "nope"},
		},
		{
			name:       "decimal places",
			constraint: schema.DecimalPlaces(2),
			valid:      []any{29.99, 30.0, int64(5)},
			invalid:    []any{29.999},
		},
		{
			name:       "after",
			constraint: schema.After(now),
			valid:      []any{now.Add(time.Second)},
			invalid:    []any{now},
		},
		{
			name:       "before",
			constraint: schema.Before(now),
			valid:      []any{now.Add(-time.Second)},
			invalid:    []any{now},
		},
		{
			name:       "unique items",
			constraint: schema.UniqueItems(),
			valid:      []any{[]any{"a", "b"}, []any{}},
			invalid:    []any{[]any{"a", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			for _, v := range tt.valid {
				assert.True(t, tt.constraint.Check(v), "expected %#v to pass", v)
			}
			for _, v := range tt.invalid {
				assert.False(t, tt.constraint.Check(v), "expected %#v to fail", v)
			}
		})
	}
}

func TestConstraint_Metadata(t *testing.T) {
	t.Parallel()

	c := schema.MinLen(2)
	assert.Equal(t, "min_len", c.Name())
	assert.Equal(t, "validation.min_length", c.TranslationKey())
	assert.Equal(t, "length must be at least 2", c.Message())
	assert.Equal(t, map[string]any{"min": 2}, c.Params())

	params := c.Params()
	params["min"] = 100
	assert.Equal(t, 2, c.Params()["min"])

	in := schema.OneOf("a", "b")
	assert.Equal(t, "must be one of: a, b", in.Message())
	assert.Equal(t, "validation.in_list", in.TranslationKey())
}

func TestConstraint_SkipsNullAndOtherKinds(t *testing.T) {
	t.Parallel()

	c := schema.MinLen(5)
	assert.True(t, c.Check(nil))
	assert.True(t, c.Check(int64(1)))
	assert.True(t, c.AppliesTo(schema.KindList))
	assert.False(t, c.AppliesTo(schema.KindInt))
}

func TestNewConstraint(t *testing.T) {
	t.Parallel()

	even := schema.NewConstraint("even", "must be even", func(v any) bool {
		return v.(int64)%2 == 0
	}, schema.KindInt)

	assert.Equal(t, "validation.even", even.TranslationKey())
	assert.True(t, even.Check(int64(4)))
	assert.False(t, even.Check(int64(3)))
	assert.True(t, even.Check("three"))
	assert.Equal(t, []schema.Kind{schema.KindInt}, even.Kinds())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, schema.KindInt, schema.KindOf(int64(1)))
	assert.Equal(t, schema.KindFloat, schema.KindOf(1.5))
	assert.Equal(t, schema.KindString, schema.KindOf("x"))
	assert.Equal(t, schema.KindBool, schema.KindOf(true))
	assert.Equal(t, schema.KindTimestamp, schema.KindOf(time.Now()))
	assert.Equal(t, schema.KindList, schema.KindOf([]any{}))
	assert.Equal(t, schema.KindMap, schema.KindOf(map[string]any{}))
	assert.Equal(t, schema.KindInvalid, schema.KindOf(nil))
}
