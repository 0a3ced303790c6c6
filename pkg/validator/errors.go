package validator

import "errors"

var (
	// ErrValidationFailed matches every Report via errors.Is.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNilSchema is returned by New when no schema is given.
	ErrNilSchema = errors.New("schema is nil")

	// ErrUnknownHookField is returned by New when hooks are registered for a
	// field the schema does not declare.
	ErrUnknownHookField = errors.New("hook registered for unknown field")

	// ErrImmutableRecord is returned by Record.Set unless the validator was
	// created with WithMutation.
	ErrImmutableRecord = errors.New("record is immutable")

	// ErrUnknownField is returned by Record.Set for names outside the schema.
	ErrUnknownField = errors.New("unknown field")

	// ErrUnknownCoercion is returned by ParseCoercion.
	ErrUnknownCoercion = errors.New("unknown coercion policy")
)
