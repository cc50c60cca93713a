// Package errs holds the generic error types shared by every layer of the
// fulfillment engine: missing values, invalid values, out-of-range values and
// lookups that found nothing.
//
// Each type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...) with
// a struct carrying the parameter name and optional cause. Unwrap returns the
// sentinel so callers branch with errors.Is, while errors.As exposes the details.
// Domain packages define their own richer errors (IllegalTransitionError,
// InsufficientStockError, ...) on top of these.
package errs
