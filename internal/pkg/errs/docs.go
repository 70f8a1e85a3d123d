// Package errs provides standardized error types for the delivery marketplace.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two families of errors:
//   - input and lookup errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError
//   - lifecycle errors: InvalidTransitionError, PermissionDeniedError,
//     AlreadyAssignedError, plus VersionIsInvalidError for optimistic write conflicts
//
// Each error type follows the same shape:
//   - A sentinel error variable (e.g., ErrAlreadyAssigned)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies it
//
// Adapters map the sentinels to transport status codes; IsValidation groups the
// three input errors that together form a validation failure.
package errs
