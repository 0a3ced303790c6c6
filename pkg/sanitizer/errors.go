package sanitizer

import "errors"

var (
	ErrUnknownTransform = errors.New("unknown transform")
	ErrInvalidTransform = errors.New("invalid transform argument")
)
