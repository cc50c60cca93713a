package warehouse

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
)

var (
	// ErrMismatch is wrapped by *MismatchError. The HTTP layer answers 422.
	ErrMismatch = errors.New("scan mismatch")

	// ErrIncompletePacking is wrapped by *IncompletePackingError.
	ErrIncompletePacking = errors.New("incomplete packing")

	// ErrPutawayTaskIsNotConstructed is returned by PutawayTask.Validate for a zero value.
	ErrPutawayTaskIsNotConstructed = errors.New("PutawayTask must be created via NewPutawayTask constructor")

	// ErrPackingSessionIsNotConstructed is returned by PackingSession.Validate for a zero value.
	ErrPackingSessionIsNotConstructed = errors.New("PackingSession must be created via NewPackingSession constructor")
)

// MismatchError is returned when a scanned location or SKU differs from the
// task. Error lists only the values that differ.
type MismatchError struct {
	TaskID           string
	ExpectedLocation string
	ScannedLocation  string
	ExpectedSKU      string
	ScannedSKU       string
}

func (e *MismatchError) Error() string {
	var parts []string
	if e.ExpectedLocation != e.ScannedLocation {
		parts = append(parts, fmt.Sprintf("location expected %q, scanned %q", e.ExpectedLocation, e.ScannedLocation))
	}
	if e.ExpectedSKU != e.ScannedSKU {
		parts = append(parts, fmt.Sprintf("sku expected %q, scanned %q", e.ExpectedSKU, e.ScannedSKU))
	}
	return fmt.Sprintf("%s on task %s: %s", ErrMismatch, e.TaskID, strings.Join(parts, "; "))
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// IncompletePackingError lists what still blocks FinalizeShipment: lines not
// yet picked and SKUs not yet verified at the packing station. Either list
// may be empty, never both.
type IncompletePackingError struct {
	OrderID       kernel.UUID
	UnpickedLines []int
	MissingSKUs   []string
}

func (e *IncompletePackingError) Error() string {
	var parts []string
	if len(e.UnpickedLines) > 0 {
		parts = append(parts, fmt.Sprintf("unpicked lines %v", e.UnpickedLines))
	}
	if len(e.MissingSKUs) > 0 {
		parts = append(parts, fmt.Sprintf("unverified SKUs %v", e.MissingSKUs))
	}
	return fmt.Sprintf("%s for order %s: %s", ErrIncompletePacking, e.OrderID, strings.Join(parts, "; "))
}

func (e *IncompletePackingError) Unwrap() error {
	return ErrIncompletePacking
}
