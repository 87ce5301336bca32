// Package errs provides standardized error types shared across the
// application. Each error type follows the same pattern: a sentinel error
// variable for errors.Is classification, a struct carrying the failure
// details, constructors with and without an underlying cause, and Unwrap
// support so wrapped errors stay matchable.
//
// The three types cover the recurring failure classes of the order lifecycle:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or out of range
//   - ObjectNotFoundError: a row or aggregate cannot be found
package errs
