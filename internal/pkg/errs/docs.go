// Package errs provides standardized error types for the parcel delivery application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when a referenced entity cannot be found
//   - AccessForbiddenError: For when an actor lacks authorization for an action
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value or entity state violates a business rule
//   - ValueIsOutOfRangeError: For when a numeric value falls outside its bounds
//   - VersionIsInvalidError: For when a conditional write loses to a concurrent update
//   - InternalError: For system-level failures with no well-formed recovery path
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// The sentinel errors double as the error taxonomy exposed to callers:
// transport adapters classify failures with errors.Is against the sentinels
// (not found, forbidden, bad request, internal) without parsing messages.
package errs
