package i18n

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/dmitrymomot/modelkit/pkg/validator"
)

// Localize returns a copy of report with messages rendered in lang. Issues
// whose translation key is unknown keep their original message.
func (t *Translator) Localize(lang string, report validator.Report) validator.Report {
	out := make(validator.Report, len(report))
	for i, issue := range report {
		out[i] = issue
		if issue.TranslationKey == "" || !t.HasTranslation(lang, issue.TranslationKey) {
			continue
		}
		out[i].Message = t.TP(lang, issue.TranslationKey, Params(issue.TranslationValues))
	}
	return out
}

// LocalizeContext is like Localize with the language taken from ctx.
func (t *Translator) LocalizeContext(ctx context.Context, report validator.Report) validator.Report {
	return t.Localize(GetLocale(ctx), report)
}

// Params renders translation values as template parameters. Lists are joined
// with ", " and timestamps use RFC 3339.
func Params(values map[string]any) map[string]string {
	params := make(map[string]string, len(values))
	for k, v := range values {
		params[k] = param(v)
	}
	return params
}

func param(v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = param(item)
		}
		return strings.Join(parts, ", ")
	}
	return cast.ToString(v)
}
