package serializer

import "errors"

var (
	ErrInvalidJSON   = errors.New("invalid JSON")
	ErrNotObject     = errors.New("top-level value must be an object")
	ErrInputTooLarge = errors.New("input too large")
)
