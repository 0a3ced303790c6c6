package schema

import "errors"

var (
	// ErrInvalidDescriptor is returned by Describe and Build for malformed field declarations.
	ErrInvalidDescriptor = errors.New("invalid field descriptor")

	// ErrDuplicateField is returned by Build when two fields share a name.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrDefaultMismatch is returned when a default factory produces a value
	// that does not match the field type.
	ErrDefaultMismatch = errors.New("default does not match field type")
)
