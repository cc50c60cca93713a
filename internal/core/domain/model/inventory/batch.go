package inventory

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
)

// Batch records one receipt of a SKU. It is an entity owned by StockItem and
// is only reachable through it.
//
// Batch follows these invariants:
//   - id and batch number are non-blank; the id is unique within its SKU
//   - quantity is the received quantity and is greater than 0
//   - receivedAt is set
//   - only the compliance status changes after creation, through
//     StockItem.UpdateBatchCompliance
//
// Batches are values: getters return copies and the expiry pointer is never
// shared with the caller.
type Batch struct {
	// id is the engine-generated identifier, e.g. "B-1843017265401323520"
	id string

	// batchNumber is the supplier's batch label; it defaults to id
	batchNumber string

	// lotNumber is optional free text
	lotNumber string

	// expiry is nil for goods without a shelf life
	expiry *time.Time

	// quantity is how many units arrived with this receipt
	quantity int

	// compliance starts as PendingReview
	compliance ComplianceStatus

	// receivedAt orders batches within a SKU
	receivedAt time.Time

	// isConstructed ensures the batch was created via NewBatch or RestoreBatch
	isConstructed bool
}

// NewBatch creates a batch in PendingReview.
//
// Parameters:
//   - id: engine-generated batch id
//   - batchNumber: supplier batch label; blank selects id
//   - lotNumber: optional lot label
//   - expiry: optional expiry date; the value is copied
//   - quantity: received units, greater than 0
//   - receivedAt: receipt time
//
// Returns:
//   - the Batch
//   - the joined validation errors of every invalid argument
//
// Example:
//
//	batch, err := inventory.NewBatch(ids.BatchID(), "", "LOT-7", nil, 40, now)
//	if err != nil {
//	    return err
//	}
//	err = item.Receive(40, batch)
func NewBatch(id, batchNumber, lotNumber string, expiry *time.Time, quantity int, receivedAt time.Time) (Batch, error) {
	b := Batch{
		lotNumber:     strings.TrimSpace(lotNumber),
		compliance:    PendingReview,
		isConstructed: true,
	}
	if strings.TrimSpace(batchNumber) == "" {
		batchNumber = id
	}

	if err := errors.Join(
		b.setID(id),
		b.setBatchNumber(batchNumber),
		b.setQuantity(quantity),
		b.setReceivedAt(receivedAt),
	); err != nil {
		return Batch{}, err
	}
	b.expiry = copyTime(expiry)

	return b, nil
}

// RestoreBatch rehydrates a stored batch without validation. Repositories use
// it; application code creates batches with NewBatch.
func RestoreBatch(
	id, batchNumber, lotNumber string,
	expiry *time.Time,
	quantity int,
	compliance ComplianceStatus,
	receivedAt time.Time,
) Batch {
	return Batch{
		id:            id,
		batchNumber:   batchNumber,
		lotNumber:     lotNumber,
		expiry:        copyTime(expiry),
		quantity:      quantity,
		compliance:    compliance,
		receivedAt:    receivedAt,
		isConstructed: true,
	}
}

// Validate returns ErrBatchIsNotConstructed for a zero Batch.
func (b Batch) Validate() error {
	if !b.isConstructed {
		return ErrBatchIsNotConstructed
	}
	return nil
}

// ID returns the engine-generated batch id.
func (b Batch) ID() string {
	return b.id
}

// BatchNumber returns the supplier batch label.
func (b Batch) BatchNumber() string {
	return b.batchNumber
}

// LotNumber returns the lot label, possibly empty.
func (b Batch) LotNumber() string {
	return b.lotNumber
}

// Expiry returns a copy of the expiry date, or nil when the goods do not expire.
func (b Batch) Expiry() *time.Time {
	return copyTime(b.expiry)
}

// Quantity returns the received quantity. Shipments do not decrease it.
func (b Batch) Quantity() int {
	return b.quantity
}

// Compliance returns the current review outcome.
func (b Batch) Compliance() ComplianceStatus {
	return b.compliance
}

// ReceivedAt returns the receipt time.
func (b Batch) ReceivedAt() time.Time {
	return b.receivedAt
}

// setID trims and sets the batch identifier.
// This is a private method used only during construction.
func (b *Batch) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("batch id")
	}
	b.id = strings.TrimSpace(id)
	return nil
}

// setBatchNumber trims and sets the supplier batch label.
// This is a private method used only during construction.
func (b *Batch) setBatchNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("batch number")
	}
	b.batchNumber = strings.TrimSpace(number)
	return nil
}

// setQuantity sets the received quantity, which must be positive.
// This is a private method used only during construction.
func (b *Batch) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("batch quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	b.quantity = quantity
	return nil
}

// setReceivedAt sets the receipt time, which must not be zero.
// This is a private method used only during construction.
func (b *Batch) setReceivedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("received at")
	}
	b.receivedAt = at
	return nil
}

// copyTime returns an independent copy of t, or nil.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
