package commands

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input document")
	ErrEmptyInput   = errors.New("empty input document")
)

// ExitCodeInvalid is returned when the input fails validation.
const ExitCodeInvalid = 2

// ExitError carries a process exit code alongside the error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d: %v", e.Code, e.Err)
}

func (e *ExitError) Unwrap() error { return e.Err }
