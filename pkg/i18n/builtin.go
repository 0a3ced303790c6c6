package i18n

import "context"

// NewBuiltin creates a translator over the catalogs shipped with the package.
func NewBuiltin(ctx context.Context, options ...Option) (*Translator, error) {
	return NewTranslator(ctx, BuiltinAdapter(), options...)
}
