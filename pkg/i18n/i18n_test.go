package i18n_test

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modelkit/pkg/i18n"
	"github.com/dmitrymomot/modelkit/pkg/schema"
	"github.com/dmitrymomot/modelkit/pkg/validator"
)

func TestTranslator(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tr, err := i18n.NewTranslator(ctx, &i18n.MapAdapter{Data: map[string]map[string]any{
		"en": {"greeting": "Hello, %{name}!", "nested": map[string]any{"key": "deep"}},
		"es": {"greeting": "¡Hola, %{name}!"},
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())
	assert.Equal(t, "Hello, Ana!", tr.T("en", "greeting", "name", "Ana"))
	assert.Equal(t, "¡Hola, Ana!", tr.T("es", "greeting", "name", "Ana"))
	assert.Equal(t, "deep", tr.T("en", "nested.key"))

	t.Run("resolves languages", func(t *testing.T) {
		assert.Equal(t, "es", tr.Resolve("es-MX"))
		assert.Equal(t, "en", tr.Resolve("fr"))
		assert.Equal(t, "en", tr.Resolve(""))
		assert.Equal(t, "¡Hola, Ana!", tr.T("es-AR", "greeting", "name", "Ana"))
	})

	t.Run("falls back to key", func(t *testing.T) {
		assert.Equal(t, "missing.key", tr.T("en", "missing.key"))
		assert.Equal(t, "nested", tr.T("en", "nested"))
		assert.Equal(t, "Hello, %{name}!", tr.T("en", "greeting"))
		assert.False(t, tr.HasTranslation("en", "missing"))
		assert.True(t, tr.HasTranslation("es", "greeting"))
	})

	t.Run("no fallback", func(t *testing.T) {
		strict, err := i18n.NewTranslator(ctx, &i18n.MapAdapter{}, i18n.WithFallbackToKey(false))
		require.NoError(t, err)
		assert.Empty(t, strict.T("en", "anything"))
	})

	t.Run("nil adapter", func(t *testing.T) {
		_, err := i18n.NewTranslator(ctx, nil)
		assert.ErrorIs(t, err, i18n.ErrNilAdapter)
	})
}

func TestFSAdapter(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte("en:\n  validation:\n    required: must be given\n    email: bad email\n")},
		"b.json": {Data: []byte(`{"en": {"validation": {"email": "invalid email"}}, "de": {"validation": {"required": "Pflichtfeld"}}}`)},
	}

	tr, err := i18n.NewTranslator(ctx, &i18n.FSAdapter{FS: fsys, Pattern: "*"}, i18n.WithDefaultLanguage("de"))
	require.NoError(t, err)

	assert.Equal(t, "must be given", tr.T("en", "validation.required"))
	assert.Equal(t, "invalid email", tr.T("en", "validation.email"))
	assert.Equal(t, "Pflichtfeld", tr.T("pt", "validation.required"))

	t.Run("rejects unknown formats", func(t *testing.T) {
		_, err := i18n.NewTranslator(ctx, &i18n.FSAdapter{FS: fstest.MapFS{"x.toml": {}}, Pattern: "*"})
		assert.ErrorIs(t, err, i18n.ErrUnsupportedFormat)
	})

	t.Run("rejects malformed catalogs", func(t *testing.T) {
		_, err := i18n.NewTranslator(ctx, &i18n.FSAdapter{FS: fstest.MapFS{"x.yaml": {Data: []byte("en: [")}}, Pattern: "*"})
		assert.ErrorIs(t, err, i18n.ErrFailedToParseYAML)

		_, err = i18n.NewTranslator(ctx, &i18n.FSAdapter{FS: fstest.MapFS{"x.json": {Data: []byte(`{"en": "flat"}`)}}, Pattern: "*"})
		assert.Error(t, err)
	})
}

func TestLocalize(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tr, err := i18n.NewBuiltin(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"en", "es"}, tr.SupportedLanguages())

	s := schema.MustBuild("producto",
		schema.MustDescribe("nombre", schema.String(), schema.Required(), schema.Constraints(schema.MinLen(2))),
		schema.MustDescribe("precio", schema.Float(), schema.Required(), schema.Constraints(schema.Gt(0))),
		schema.MustDescribe("categoria", schema.String(), schema.Constraints(schema.OneOf("electronica", "ropa"))),
		schema.MustDescribe("stock", schema.Int(), schema.Required()),
		schema.MustDescribe("codigo", schema.String()),
	)
	hooks := validator.Hooks{
		"codigo": {func(any, validator.View) (any, error) { return nil, validator.Violation("código reservado") }},
	}

	_, err = validator.Validate(s, map[string]any{
		"nombre":    "A",
		"precio":    0,
		"categoria": "juguetes",
		"stock":     "muchos",
		"codigo":    "X1",
	}, hooks)
	report := validator.ExtractReport(err)
	require.Len(t, report, 5)

	es := tr.Localize("es", report)
	assert.Equal(t, "la longitud debe ser al menos 2", es[0].Message)
	assert.Equal(t, "debe ser mayor que 0", es[1].Message)
	assert.Equal(t, "debe ser uno de: electronica, ropa", es[2].Message)
	assert.Equal(t, `se esperaba int, se recibió string "muchos"`, es[3].Message)
	assert.Equal(t, "código reservado", es[4].Message)

	en := tr.LocalizeContext(i18n.SetLocale(ctx, "en-GB"), report)
	assert.Equal(t, "length must be at least 2", en[0].Message)
	assert.Equal(t, "must be one of: electronica, ropa", en[2].Message)

	assert.Equal(t, "length must be at least 2", report[0].Message, "original report is unchanged")

	t.Run("unknown keys keep their message", func(t *testing.T) {
		custom := validator.Report{{Field: "x", Kind: validator.ConstraintViolation, Message: "must be even", TranslationKey: "validation.even"}}
		assert.Equal(t, "must be even", tr.Localize("es", custom)[0].Message)
	})
}

func TestParams(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	params := i18n.Params(map[string]any{
		"min":  2,
		"max":  120.5,
		"list": []any{"a", int64(1)},
		"time": at,
	})
	assert.Equal(t, map[string]string{
		"min":  "2",
		"max":  "120.5",
		"list": "a, 1",
		"time": "2024-01-02T03:04:05Z",
	}, params)
}

func TestContextLocale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, i18n.DefaultLanguage, i18n.GetLocale(context.Background()))
	assert.Equal(t, "es", i18n.GetLocale(i18n.SetLocale(context.Background(), "es")))
}
