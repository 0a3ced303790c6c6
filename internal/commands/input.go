package commands

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/modelkit/pkg/serializer"
)

// readInput decodes a JSON or YAML object from path, or from stdin when path
// is "-". JSON is detected by extension or by a leading '{'.
func readInput(stdin io.Reader, path string, maxBytes int64) (map[string]any, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", serializer.ErrInputTooLarge, maxBytes)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyInput
	}
	if strings.EqualFold(filepath.Ext(path), ".json") || trimmed[0] == '{' {
		return serializer.DecodeReader(bytes.NewReader(trimmed), 0)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	if raw == nil {
		return nil, ErrEmptyInput
	}
	return raw, nil
}
