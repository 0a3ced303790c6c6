package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/pkg/schema"
)

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order", func(t *testing.T) {
		s, err := schema.Build("user",
			schema.MustDescribe("id", schema.Int(), schema.Required()),
			schema.MustDescribe("name", schema.String(), schema.Required()),
			schema.MustDescribe("age", schema.Optional(schema.Int())),
		)
		require.NoError(t, err)

		assert.Equal(t, "user", s.Name())
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"id", "name", "age"}, s.Names())
		assert.Equal(t, 1, s.Index("name"))
		assert.Equal(t, -1, s.Index("email"))
		assert.Equal(t, "age", s.FieldAt(2).Name())

		f, ok := s.Field("age")
		require.True(t, ok)
		assert.Equal(t, schema.KindOptional, f.Type().Kind())

		_, ok = s.Field("email")
		assert.False(t, ok)
	})

	t.Run("rejects duplicate fields", func(t *testing.T) {
		s, err := schema.Build("user",
			schema.MustDescribe("id", schema.Int()),
			schema.MustDescribe("id", schema.String()),
		)
		assert.ErrorIs(t, err, schema.ErrDuplicateField)
		assert.Nil(t, s)
	})

	t.Run("rejects zero fields", func(t *testing.T) {
		_, err := schema.Build("user", schema.Field{})
		assert.ErrorIs(t, err, schema.ErrInvalidDescriptor)
	})

	t.Run("empty schema", func(t *testing.T) {
		s, err := schema.Build("empty")
		require.NoError(t, err)
		assert.Zero(t, s.Len())
		assert.Empty(t, s.Names())
	})

	t.Run("fields are copied", func(t *testing.T) {
		s := schema.MustBuild("user", schema.MustDescribe("id", schema.Int()))
		fields := s.Fields()
		fields[0] = schema.MustDescribe("other", schema.Int())
		assert.Equal(t, "id", s.FieldAt(0).Name())
	})

	t.Run("must build panics", func(t *testing.T) {
		assert.Panics(t, func() {
			schema.MustBuild("user",
				schema.MustDescribe("id", schema.Int()),
				schema.MustDescribe("id", schema.Int()),
			)
		})
	})
}

func TestTypeString(t *testing.T) {
	t.Parallel()
	item := schema.MustBuild("item_orden", schema.MustDescribe("id", schema.Int()))

	tests := []struct {
		typ      schema.Type
		expected string
	}{
		{schema.Int(), "int"},
		{schema.Timestamp(), "timestamp"},
		{schema.List(schema.Int()), "list<int>"},
		{schema.Map(schema.String(), schema.Float()), "map<string,float>"},
		{schema.Optional(schema.List(schema.String())), "optional<list<string>>"},
		{schema.Union(schema.Int(), schema.String()), "union<int|string>"},
		{schema.Object(item), "object:item_orden"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.typ.String())
	}
}

func TestTypeAccessors(t *testing.T) {
	t.Parallel()

	opt := schema.Optional(schema.Optional(schema.String()))
	assert.Equal(t, schema.KindString, opt.Base().Kind())

	m := schema.Map(schema.Int(), schema.Bool())
	key, ok := m.Key()
	require.True(t, ok)
	assert.Equal(t, schema.KindInt, key.Kind())
	elem, ok := m.Elem()
	require.True(t, ok)
	assert.Equal(t, schema.KindBool, elem.Kind())

	_, ok = schema.Int().Elem()
	assert.False(t, ok)

	base := schema.String()
	constrained := base.With(schema.MinLen(1))
	assert.Empty(t, base.Constraints())
	assert.Len(t, constrained.Constraints(), 1)

	assert.True(t, schema.KindTimestamp.IsScalar())
	assert.False(t, schema.KindList.IsScalar())
}
