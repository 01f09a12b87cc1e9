// Package errs provides standardized error types for the parcel service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes two groups of error types:
//   - Validation and lookup errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError
//   - Workflow errors: UnauthenticatedError, ForbiddenError, ConflictError,
//     PartialFailureError, UpstreamError, PaymentProcessorError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers classify errors with errors.Is against the sentinels and pull the
// details out with errors.As. The HTTP adapter maps each sentinel to a status
// code in a single place.
//
// PartialFailureError is special: it is only produced by multi-step workflows
// whose earlier steps are already durable. It must never be treated as a plain
// failure, because the stores are no longer in the state they were in before
// the call.
package errs
