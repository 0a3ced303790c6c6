package serializer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrymomot/modelkit/pkg/validator"
)

// JSON encodes rec with fields in declaration order.
func JSON(rec *validator.Record) ([]byte, error) {
	return json.Marshal(ToPlain(rec))
}

// JSONIndent is like JSON but indents nested values with indent.
func JSONIndent(rec *validator.Record, indent string) ([]byte, error) {
	return json.MarshalIndent(ToPlain(rec), "", indent)
}

// FromJSON decodes a single JSON object and validates it with v. Decoding
// errors wrap ErrInvalidJSON; validation errors are validator Reports.
func FromJSON(v *validator.Validator, data []byte) (*validator.Record, error) {
	raw, err := decodeObject(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return v.Validate(raw)
}

// FromReader is like FromJSON but reads at most maxBytes from r. A
// non-positive maxBytes disables the limit.
func FromReader(v *validator.Validator, r io.Reader, maxBytes int64) (*validator.Record, error) {
	raw, err := DecodeReader(r, maxBytes)
	if err != nil {
		return nil, err
	}
	return v.Validate(raw)
}

// DecodeReader decodes a single JSON object from r without validating it.
func DecodeReader(r io.Reader, maxBytes int64) (map[string]any, error) {
	if maxBytes <= 0 {
		return decodeObject(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrInputTooLarge, maxBytes)
	}
	return decodeObject(bytes.NewReader(data))
}

func decodeObject(r io.Reader) (map[string]any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var raw any
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
	}

	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrInvalidJSON, ErrNotObject)
	}
	return m, nil
}
