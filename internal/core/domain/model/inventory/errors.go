package inventory

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInsufficientStock is wrapped by *InsufficientStockError. It is the
	// expected outcome of reserving more than is available.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrUnknownSKU is wrapped by *UnknownSKUError.
	ErrUnknownSKU = errors.New("unknown SKU")

	// ErrInvariantViolation is wrapped by *InvariantViolationError. It signals
	// a corrupted ledger row, never a normal business outcome.
	ErrInvariantViolation = errors.New("inventory invariant violated")

	// ErrReservationConflict is wrapped by *ReservationConflictError.
	ErrReservationConflict = errors.New("reservation conflict")

	// ErrStockItemIsNotConstructed is returned by StockItem.Validate for a zero value.
	ErrStockItemIsNotConstructed = errors.New("StockItem must be created via NewStockItem or RestoreStockItem")

	// ErrBatchIsNotConstructed is returned by Batch.Validate for a zero value.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch")
)

// InsufficientStockError is returned when a reservation asks for more than is
// available. Available is the amount that could have been reserved at the time.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s for %s: requested %d, available %d", ErrInsufficientStock, e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// UnknownSKUError reports a SKU with no ledger row. It unwraps to both
// ErrUnknownSKU and errs.ErrObjectNotFound, so the HTTP layer answers 404
// unless a more specific mapping applies.
type UnknownSKUError struct {
	SKU string
}

// NewUnknownSKUError returns an UnknownSKUError for sku.
func NewUnknownSKUError(sku string) *UnknownSKUError {
	return &UnknownSKUError{SKU: sku}
}

func (e *UnknownSKUError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownSKU, e.SKU)
}

func (e *UnknownSKUError) Unwrap() []error {
	return []error{ErrUnknownSKU, errs.ErrObjectNotFound}
}

// InvariantViolationError describes a ledger row whose quantities are
// impossible: a negative quantity or allocated > onHand. It carries the
// stored values unchanged so that an operator can repair the row.
type InvariantViolationError struct {
	SKU       string
	OnHand    int
	Allocated int
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s for %s: onHand=%d allocated=%d", ErrInvariantViolation, e.SKU, e.OnHand, e.Allocated)
}

func (e *InvariantViolationError) Unwrap() error {
	return ErrInvariantViolation
}

// ReservationConflictError aborts an all-or-nothing reservation. Cause is the
// line failure that triggered the rollback.
type ReservationConflictError struct {
	SKU   string
	Cause error
}

func (e *ReservationConflictError) Error() string {
	return fmt.Sprintf("%s on %s: %v", ErrReservationConflict, e.SKU, e.Cause)
}

func (e *ReservationConflictError) Unwrap() []error {
	return []error{ErrReservationConflict, e.Cause}
}
