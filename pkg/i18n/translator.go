package i18n

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language is requested or none matches.
const DefaultLanguage = "en"

// Translator renders message templates from loaded catalogs. It is read-only
// after NewTranslator and safe for concurrent use.
type Translator struct {
	translations  map[string]map[string]any
	defaultLang   string
	fallbackToKey bool
	logMissing    bool
	logger        *slog.Logger
}

// NewTranslator loads translations through adapter.
func NewTranslator(ctx context.Context, adapter TranslationAdapter, options ...Option) (*Translator, error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	t := &Translator{
		defaultLang:   DefaultLanguage,
		fallbackToKey: true,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(t)
	}

	translations, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	for lang, m := range translations {
		if lang == "" {
			return nil, ErrEmptyLanguageCode
		}
		if m == nil {
			return nil, fmt.Errorf("nil translations map for language: %s", lang)
		}
	}

	t.translations = translations
	t.logger.DebugContext(ctx, "translations loaded", slog.Any("languages", t.SupportedLanguages()))
	return t, nil
}

// SupportedLanguages returns the loaded language codes, sorted.
func (t *Translator) SupportedLanguages() []string {
	langs := make([]string, 0, len(t.translations))
	for lang := range t.translations {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Resolve maps a requested language to a loaded one: an exact match first,
// then the base language ("es-MX" to "es"), then the default language.
func (t *Translator) Resolve(lang string) string {
	if _, ok := t.translations[lang]; ok {
		return lang
	}
	if tag, err := language.Parse(lang); err == nil {
		base, _ := tag.Base()
		if _, ok := t.translations[base.String()]; ok {
			return base.String()
		}
	}
	return t.defaultLang
}

// HasTranslation reports whether key exists for lang after resolution.
func (t *Translator) HasTranslation(lang, key string) bool {
	_, ok := lookup(t.translations[t.Resolve(lang)], key)
	return ok
}

// T translates a dot-separated key. Arguments are key/value pairs replacing
// %{key} placeholders:
//
//	translator.T("es", "validation.min_length", "min", "2")
//	// "la longitud debe ser al menos 2"
//
// Missing keys return the key itself unless WithFallbackToKey(false) is set.
func (t *Translator) T(lang, key string, args ...string) string {
	return t.TP(lang, key, pairs(args))
}

// TP is like T with the parameters given as a map.
func (t *Translator) TP(lang, key string, params map[string]string) string {
	resolved := t.Resolve(lang)
	val, ok := lookup(t.translations[resolved], key)
	tmpl, isString := val.(string)
	if !ok || !isString {
		if t.logMissing {
			t.logger.Warn("translation not found", slog.String("lang", resolved), slog.String("key", key))
		}
		if t.fallbackToKey {
			return substitute(key, params)
		}
		return ""
	}
	return substitute(tmpl, params)
}

func lookup(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m
	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		current, ok = val.(map[string]any)
		if !ok {
			return nil, false
		}
	}
	return nil, false
}

func pairs(args []string) map[string]string {
	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return params
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// substitute replaces %{name} placeholders; unknown placeholders are kept.
func substitute(tmpl string, params map[string]string) string {
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
