package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/modelkit/pkg/sanitizer"
)

func TestStringTransforms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fn       func(string) string
		input    string
		expected string
	}{
		{name: "trim", fn: sanitizer.Trim, input: "\t hola \n", expected: "hola"},
		{name: "lower", fn: sanitizer.ToLower, input: "ELECTRÓNICA", expected: "electrónica"},
		{name: "upper", fn: sanitizer.ToUpper, input: "abc", expected: "ABC"},
		{name: "title", fn: sanitizer.Title, input: "juan PÉREZ", expected: "Juan Pérez"},
		{name: "title spanish", fn: sanitizer.TitleIn(language.Spanish), input: "el NIÑO", expected: "El Niño"},
		{name: "normalize whitespace", fn: sanitizer.NormalizeWhitespace, input: "  a \t b\n\nc ", expected: "a b c"},
		{name: "keep digits", fn: sanitizer.KeepDigits, input: "+34 600-111-222", expected: "34600111222"},
		{name: "keep alphanumeric", fn: sanitizer.KeepAlphanumeric, input: "a-b c!", expected: "ab c"},
		{name: "remove control chars", fn: sanitizer.RemoveControlChars, input: "a\x00b\nc", expected: "ab\nc"},
		{name: "strip html", fn: sanitizer.StripHTML, input: "<b>Tom &amp; Jerry</b>", expected: "Tom & Jerry"},
		{name: "normalize email", fn: sanitizer.NormalizeEmail, input: " Juan..Perez.@Example.COM ", expected: "juan.perez@example.com"},
		{name: "normalize invalid email", fn: sanitizer.NormalizeEmail, input: " A@B@C ", expected: "a@b@c"},
		{name: "normalize phone", fn: sanitizer.NormalizePhone, input: " +34 (600) 111 222", expected: "+34600111222"},
		{name: "normalize local phone", fn: sanitizer.NormalizePhone, input: "600 111 222", expected: "600111222"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.fn(tt.input))
		})
	}
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ñand", sanitizer.MaxLength("ñandú", 4))
	assert.Equal(t, "abc", sanitizer.MaxLength("abc", 10))
	assert.Equal(t, "", sanitizer.MaxLength("abc", 0))
}

func TestNumeric(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.68, sanitizer.RoundTo(2.675, 2))
	assert.Equal(t, 29.99, sanitizer.RoundTo(29.99, 2))
	assert.Equal(t, -1.5, sanitizer.RoundTo(-1.45, 1))
	assert.Equal(t, 1200.0, sanitizer.RoundTo(1234, -2))
	assert.Equal(t, 3.14, sanitizer.Rounder(2)(3.14159))

	assert.Equal(t, 10, sanitizer.Clamp(15, 0, 10))
	assert.Equal(t, 0.5, sanitizer.Clamp(0.5, 0.0, 1.0))
	assert.Equal(t, int64(-3), sanitizer.Clamp(int64(-7), -3, 3))
}

func TestApplyCompose(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hola mundo", sanitizer.Apply("  HOLA   MUNDO ", sanitizer.NormalizeWhitespace, sanitizer.ToLower))

	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.Title)
	assert.Equal(t, "Ana María", clean(" ana maría "))
	assert.Equal(t, "x", sanitizer.Apply[string]("x"))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	tr, err := sanitizer.Lookup("title")
	require.NoError(t, err)
	require.NotNil(t, tr.String)
	assert.Nil(t, tr.Float)
	assert.Equal(t, "Ana", tr.String("ana"))

	tr, err = sanitizer.Lookup("round:2")
	require.NoError(t, err)
	require.NotNil(t, tr.Float)
	assert.Equal(t, 1.23, tr.Float(1.234))

	tr, err = sanitizer.Lookup("max_length:3")
	require.NoError(t, err)
	assert.Equal(t, "abc", tr.String("abcdef"))

	_, err = sanitizer.Lookup("shout")
	assert.ErrorIs(t, err, sanitizer.ErrUnknownTransform)

	for _, ref := range []string{"round", "round:x", "trim:1"} {
		_, err = sanitizer.Lookup(ref)
		assert.ErrorIs(t, err, sanitizer.ErrInvalidTransform, ref)
	}

	assert.Contains(t, sanitizer.Names(), "normalize_email")
	assert.Contains(t, sanitizer.Names(), "round")
}
