package i18n

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parser decodes catalog content into translations keyed by language.
type Parser interface {
	Parse(ctx context.Context, content []byte) (map[string]map[string]any, error)
}

// YAMLParser parses catalogs of the form
//
//	en:
//	  validation:
//	    required: field is required
type YAMLParser struct{}

func (YAMLParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseYAML, err)
	}
	return byLanguage(data)
}

// JSONParser parses catalogs with the same layout as YAMLParser.
type JSONParser struct{}

func (JSONParser) Parse(ctx context.Context, content []byte) (map[string]map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrParsingCancelled, err)
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, errors.Join(ErrFailedToParseJSON, err)
	}
	return byLanguage(data)
}

// ParserFor picks a parser from the file extension.
func ParserFor(filename string) (Parser, error) {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(filename), ".")) {
	case "yaml", "yml":
		return YAMLParser{}, nil
	case "json":
		return JSONParser{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
}

func byLanguage(data map[string]any) (map[string]map[string]any, error) {
	result := make(map[string]map[string]any, len(data))
	for lang, val := range data {
		m, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("invalid structure for language %q: expected map, got %T", lang, val)
		}
		result[lang] = m
	}
	return result, nil
}
