// Package i18n renders validation messages in other languages.
//
// Catalogs are YAML or JSON documents keyed by language, with nested keys
// addressed by dots ("validation.min_length"). Templates use %{name}
// placeholders filled from the translation values of a validator.Issue.
//
//	tr, err := i18n.NewBuiltin(ctx)
//	if err != nil {
//	    return err
//	}
//	localized := tr.Localize("es", report)
//
// The built-in catalogs cover English and Spanish. Custom catalogs are loaded
// with MapAdapter or FSAdapter. Requested languages resolve to an exact match,
// then to their base language, then to the default language.
package i18n
