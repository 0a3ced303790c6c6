package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

func configSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Build("configuracion_app",
		schema.MustDescribe("nombre_app", schema.String(), schema.Default("MiApp")),
		schema.MustDescribe("debug", schema.Bool(), schema.Default(false)),
		schema.MustDescribe("puerto", schema.Int(),
			schema.Default(8000),
			schema.Constraints(schema.Min(1024), schema.Max(65535)),
		),
		schema.MustDescribe("max_conexiones", schema.Int(),
			schema.Default(100),
			schema.Constraints(schema.Min(1), schema.Max(1000)),
		),
	)
	require.NoError(t, err)
	return s
}

func TestRecord_Accessors(t *testing.T) {
	t.Parallel()
	s := configSchema(t)

	rec, err := validator.Validate(s, map[string]any{"debug": true, "puerto": 9000}, nil)
	require.NoError(t, err)

	assert.Same(t, s, rec.Schema())
	assert.Equal(t, 4, rec.Len())
	assert.Equal(t, []string{"nombre_app", "debug", "puerto", "max_conexiones"}, rec.Names())
	assert.Equal(t, "MiApp", rec.At(0))
	assert.Equal(t, map[string]any{
		"nombre_app":     "MiApp",
		"debug":          true,
		"puerto":         int64(9000),
		"max_conexiones": int64(100),
	}, rec.Values())

	assert.Equal(t, "MiApp", rec.Text("nombre_app"))
	assert.True(t, rec.Bool("debug"))
	assert.Equal(t, int64(9000), rec.Int("puerto"))
	assert.Zero(t, rec.Float("puerto"))
	assert.Nil(t, rec.List("puerto"))
	assert.Nil(t, rec.Object("missing"))

	_, ok := rec.Get("missing")
	assert.False(t, ok)

	_, ok = validator.Value[string](rec, "puerto")
	assert.False(t, ok)

	assert.Equal(t, `configuracion_app{nombre_app="MiApp" debug=true puerto=9000 max_conexiones=100}`, rec.String())
}

func TestRecord_Set(t *testing.T) {
	t.Parallel()
	s := configSchema(t)

	t.Run("records are immutable by default", func(t *testing.T) {
		rec, err := validator.Validate(s, map[string]any{}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, rec.Set("puerto", 9000), validator.ErrImmutableRecord)
	})

	t.Run("mutation revalidates the field", func(t *testing.T) {
		v, err := validator.New(s, validator.WithMutation())
		require.NoError(t, err)
		rec, err := v.Validate(map[string]any{})
		require.NoError(t, err)

		require.NoError(t, rec.Set("puerto", "9090"))
		port, _ := validator.Value[int64](rec, "puerto")
		assert.Equal(t, int64(9090), port)

		err = rec.Set("puerto", 80)
		report := validator.ExtractReport(err)
		require.Len(t, report, 1)
		assert.Equal(t, "puerto", report[0].Field)
		assert.Equal(t, validator.ConstraintViolation, report[0].Kind)

		port, _ = validator.Value[int64](rec, "puerto")
		assert.Equal(t, int64(9090), port)

		assert.ErrorIs(t, rec.Set("host", "x"), validator.ErrUnknownField)
	})

	t.Run("mutation runs hooks against earlier fields", func(t *testing.T) {
		v, err := validator.New(s,
			validator.WithMutation(),
			validator.WithHooks(validator.Hooks{
				"max_conexiones": {validator.Check(func(n int64, prior validator.View) bool {
					debug, _ := prior.Get("debug")
					return debug == true || n >= 10
				}, "production needs at least 10 connections")},
			}),
		)
		require.NoError(t, err)
		rec, err := v.Validate(map[string]any{})
		require.NoError(t, err)

		assert.Error(t, rec.Set("max_conexiones", 5))
		require.NoError(t, rec.Set("debug", true))
		assert.NoError(t, rec.Set("max_conexiones", 5))
	})
}

func TestRecord_Equal(t *testing.T) {
	t.Parallel()
	s := schema.MustBuild("event",
		schema.MustDescribe("at", schema.Timestamp(), schema.Required()),
		schema.MustDescribe("tags", schema.List(schema.String()), schema.Required()),
	)
	other := schema.MustBuild("event",
		schema.MustDescribe("at", schema.Timestamp(), schema.Required()),
		schema.MustDescribe("tags", schema.List(schema.String()), schema.Required()),
	)

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	a, err := validator.Validate(s, map[string]any{"at": at, "tags": []any{"x"}}, nil)
	require.NoError(t, err)
	b, err := validator.Validate(s, map[string]any{"at": "2024-01-02T05:04:05+02:00", "tags": []string{"x"}}, nil)
	require.NoError(t, err)
	c, err := validator.Validate(s, map[string]any{"at": at, "tags": []any{"y"}}, nil)
	require.NoError(t, err)
	d, err := validator.Validate(other, map[string]any{"at": at, "tags": []any{"x"}}, nil)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
	assert.False(t, a.Equal(nil))
}

func TestRecord_ContainersAreCopies(t *testing.T) {
	t.Parallel()
	s := schema.MustBuild("post",
		schema.MustDescribe("tags", schema.List(schema.String()), schema.Default([]string{"a"})),
		schema.MustDescribe("meta", schema.Map(schema.String(), schema.List(schema.Int())), schema.Required()),
	)
	v, err := validator.New(s)
	require.NoError(t, err)

	t.Run("default lists are not shared", func(t *testing.T) {
		first, err := v.Validate(map[string]any{"meta": map[string]any{}})
		require.NoError(t, err)
		first.List("tags")[0] = "changed"
		first.Values()["tags"].([]any)[0] = "changed"

		second, err := v.Validate(map[string]any{"meta": map[string]any{}})
		require.NoError(t, err)
		assert.Equal(t, []any{"a"}, first.List("tags"))
		assert.Equal(t, []any{"a"}, second.List("tags"))
		assert.Equal(t, []any{"a"}, s.FieldAt(0).Default())
	})

	t.Run("accessors return copies", func(t *testing.T) {
		rec, err := v.Validate(map[string]any{"tags": []any{"x"}, "meta": map[string]any{"k": []any{1}}})
		require.NoError(t, err)

		rec.List("tags")[0] = "y"
		rec.At(0).([]any)[0] = "y"
		meta := rec.Map("meta")
		meta["k"].([]any)[0] = int64(5)
		meta["other"] = []any{}

		assert.Equal(t, []any{"x"}, rec.List("tags"))
		assert.Equal(t, map[string]any{"k": []any{int64(1)}}, rec.Map("meta"))
	})

	t.Run("hooks cannot change earlier fields", func(t *testing.T) {
		hooked, err := validator.New(s, validator.WithHooks(validator.Hooks{
			"meta": {func(value any, prior validator.View) (any, error) {
				tags, _ := prior.Get("tags")
				tags.([]any)[0] = "changed"
				return value, nil
			}},
		}))
		require.NoError(t, err)

		rec, err := hooked.Validate(map[string]any{"tags": []any{"x"}, "meta": map[string]any{}})
		require.NoError(t, err)
		assert.Equal(t, []any{"x"}, rec.List("tags"))
	})
}
