package schemafile

import "errors"

var (
	ErrFailedToRead      = errors.New("failed to read schema document")
	ErrFailedToParse     = errors.New("failed to parse schema document")
	ErrInvalidDocument   = errors.New("invalid schema document")
	ErrUnknownType       = errors.New("unknown type")
	ErrUnknownSchema     = errors.New("unknown schema reference")
	ErrUnknownConstraint = errors.New("unknown constraint")
)
