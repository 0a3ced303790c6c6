package i18n

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"maps"
	"path"
	"sort"
)

//go:embed locales/*.yaml
var builtin embed.FS

// TranslationAdapter loads translations keyed by language.
type TranslationAdapter interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapAdapter serves translations from memory.
type MapAdapter struct {
	Data map[string]map[string]any
}

func (a *MapAdapter) Load(_ context.Context) (map[string]map[string]any, error) {
	if a.Data == nil {
		return make(map[string]map[string]any), nil
	}
	return a.Data, nil
}

// FSAdapter loads every catalog file matching a glob pattern in a file system.
// Later files extend and override earlier ones, in lexical order.
type FSAdapter struct {
	FS      fs.FS
	Pattern string
}

// BuiltinAdapter returns the catalogs shipped with the package (en, es).
func BuiltinAdapter() *FSAdapter {
	return &FSAdapter{FS: builtin, Pattern: "locales/*.yaml"}
}

func (a *FSAdapter) Load(ctx context.Context) (map[string]map[string]any, error) {
	files, err := fs.Glob(a.FS, a.Pattern)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}
	sort.Strings(files)

	all := make(map[string]map[string]any)
	for _, name := range files {
		parser, err := ParserFor(path.Base(name))
		if err != nil {
			return nil, err
		}
		content, err := fs.ReadFile(a.FS, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		translations, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, err
		}
		for lang, m := range translations {
			if all[lang] == nil {
				all[lang] = make(map[string]any)
			}
			merge(all[lang], m)
		}
	}
	return all, nil
}

// merge copies src into dst, descending into nested maps.
func merge(dst, src map[string]any) {
	for k, v := range src {
		sv, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dv, ok := dst[k].(map[string]any)
		if !ok {
			dst[k] = maps.Clone(sv)
			continue
		}
		merge(dv, sv)
	}
}
