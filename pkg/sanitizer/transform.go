package sanitizer

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Transform is a named sanitizer referenced from schema documents. Exactly
// one of String and Float is set.
type Transform struct {
	Name   string
	String func(string) string
	Float  func(float64) float64
}

var stringTransforms = map[string]func(string) string{
	"trim":                 Trim,
	"lower":                ToLower,
	"upper":                ToUpper,
	"title":                Title,
	"normalize_whitespace": NormalizeWhitespace,
	"normalize_email":      NormalizeEmail,
	"normalize_phone":      NormalizePhone,
	"keep_digits":          KeepDigits,
	"keep_alphanumeric":    KeepAlphanumeric,
	"strip_html":           StripHTML,
	"remove_control_chars": RemoveControlChars,
}

// Lookup resolves a transform reference of the form "name" or "name:arg".
// Parameterized transforms are "max_length:N" and "round:N".
func Lookup(ref string) (Transform, error) {
	name, arg, hasArg := strings.Cut(strings.TrimSpace(ref), ":")

	if fn, ok := stringTransforms[name]; ok {
		if hasArg {
			return Transform{}, fmt.Errorf("%w: %s takes no argument", ErrInvalidTransform, name)
		}
		return Transform{Name: name, String: fn}, nil
	}

	switch name {
	case "max_length", "round":
		if !hasArg {
			return Transform{}, fmt.Errorf("%w: %s needs an integer argument", ErrInvalidTransform, name)
		}
		n, err := strconv.Atoi(arg)
		if err != nil {
			return Transform{}, fmt.Errorf("%w: %s:%s", ErrInvalidTransform, name, arg)
		}
		if name == "round" {
			return Transform{Name: ref, Float: Rounder(n)}, nil
		}
		return Transform{Name: ref, String: func(s string) string { return MaxLength(s, n) }}, nil
	}

	return Transform{}, fmt.Errorf("%w: %q", ErrUnknownTransform, ref)
}

// Names lists the supported transform names.
func Names() []string {
	names := append(slices.Collect(maps.Keys(stringTransforms)), "max_length", "round")
	slices.Sort(names)
	return names
}
