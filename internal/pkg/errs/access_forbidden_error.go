package errs

import (
	"errors"
	"fmt"
)

// ErrAccessForbidden is the sentinel error for all AccessForbiddenError instances.
// It marks failures where the actor identity resolved but lacks authorization
// for the target entity or action.
var ErrAccessForbidden = errors.New("access is forbidden")

// AccessForbiddenError indicates that an authenticated actor is not allowed
// to perform the requested action.
type AccessForbiddenError struct {
	Action string
	Cause  error
}

// NewAccessForbiddenError creates an AccessForbiddenError describing the
// refused action, e.g. "only the sender can cancel this parcel".
func NewAccessForbiddenError(action string) *AccessForbiddenError {
	return &AccessForbiddenError{Action: action}
}

// NewAccessForbiddenErrorWithCause creates an AccessForbiddenError that wraps
// an underlying cause.
func NewAccessForbiddenErrorWithCause(action string, cause error) *AccessForbiddenError {
	return &AccessForbiddenError{Action: action, Cause: cause}
}

func (e *AccessForbiddenError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrAccessForbidden, e.Action, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrAccessForbidden, e.Action))
}

func (e *AccessForbiddenError) Unwrap() error {
	return ErrAccessForbidden
}
