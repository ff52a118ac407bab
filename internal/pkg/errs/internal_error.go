package errs

import (
	"errors"
	"fmt"
)

// ErrInternal is the sentinel error for all InternalError instances.
// It marks system-level failures with no well-formed recovery path, such as
// tracking-ID generation exhausting its retry budget.
var ErrInternal = errors.New("internal error")

// InternalError indicates an unexpected system failure.
type InternalError struct {
	Message string
	Cause   error
}

// NewInternalError creates an InternalError with the given message.
func NewInternalError(message string) *InternalError {
	return &InternalError{Message: message}
}

// NewInternalErrorWithCause creates an InternalError that wraps an
// underlying cause.
func NewInternalErrorWithCause(message string, cause error) *InternalError {
	return &InternalError{Message: message, Cause: cause}
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrInternal, e.Message, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrInternal, e.Message))
}

func (e *InternalError) Unwrap() error {
	return ErrInternal
}
