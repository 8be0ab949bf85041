// Package errs provides standardized error types for the coffee shop
// application. It implements a consistent pattern for error creation,
// formatting, and unwrapping that is used throughout the codebase.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrValueIsRequired)
//   - a struct type carrying the error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for errors.Is support
//
// The taxonomy mirrors how the domain fails:
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed construction input, rejected before a partial object exists
//   - InvalidStateTransitionError: a state machine guard refused a
//     transition; carries the current and target states, never mutates
//   - ObjectNotFoundError: an absent lookup result the caller interprets
package errs
