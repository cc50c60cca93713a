package warehouse

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// PutawayStatus is the state of a putaway task.
type PutawayStatus int

const (
	// PutawayPending tasks wait at the receiving dock.
	PutawayPending PutawayStatus = iota
	// PutawayCompleted tasks have been stored. Completion is final.
	PutawayCompleted
)

// String returns the wire name.
func (s PutawayStatus) String() string {
	if s == PutawayCompleted {
		return "Completed"
	}
	return "Pending"
}

// PutawayTask moves a received batch from the receiving dock to its storage location.
//
// Stock is booked when goods are received, not when they are put away, so a
// pending task never blocks reservations.
type PutawayTask struct {
	// id is the task identity.
	id kernel.UUID
	// receiptRef is the purchase order number, or the batch id for ad hoc receipts.
	receiptRef string
	// sku and quantity describe the goods on the dock.
	sku      string
	quantity int
	// batchID links the task to the received batch.
	batchID string
	// source is always the receiving dock.
	source kernel.Location
	// suggested is the SKU's default storage bin.
	suggested kernel.Location
	// priority is Normal; putaway competes with Normal picks.
	priority order.Priority
	// status moves from PutawayPending to PutawayCompleted once.
	status PutawayStatus
	// createdAt is the receipt time in UTC.
	createdAt time.Time

	isConstructed bool
}

// NewPutawayTask creates a pending task from the receiving dock to suggested.
// receiptRef is the purchase order number when there is one, the batch id otherwise.
func NewPutawayTask(
	id kernel.UUID,
	receiptRef, sku string,
	quantity int,
	batchID string,
	suggested kernel.Location,
	createdAt time.Time,
) (*PutawayTask, error) {
	t := &PutawayTask{
		source:        kernel.ReceivingDock(),
		priority:      order.Normal,
		status:        PutawayPending,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		t.setID(id),
		t.setReceiptRef(receiptRef),
		t.setSKU(sku),
		t.setQuantity(quantity),
		t.setBatchID(batchID),
		t.setSuggested(suggested),
	); err != nil {
		return nil, err
	}
	return t, nil
}

// RestorePutawayTask rehydrates a stored task without validation.
func RestorePutawayTask(
	id kernel.UUID,
	receiptRef, sku string,
	quantity int,
	batchID string,
	source, suggested kernel.Location,
	priority order.Priority,
	status PutawayStatus,
	createdAt time.Time,
) *PutawayTask {
	return &PutawayTask{
		id:            id,
		receiptRef:    receiptRef,
		sku:           sku,
		quantity:      quantity,
		batchID:       batchID,
		source:        source,
		suggested:     suggested,
		priority:      priority,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}
}

// Validate fails for a nil or zero task.
func (t *PutawayTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPutawayTaskIsNotConstructed
	}
	return nil
}

// ID returns the task identity.
func (t *PutawayTask) ID() kernel.UUID {
	return t.id
}

// ReceiptRef returns the purchase order number or batch id.
func (t *PutawayTask) ReceiptRef() string {
	return t.receiptRef
}

// SKU returns the SKU to store.
func (t *PutawayTask) SKU() string {
	return t.sku
}

// Quantity returns the number of units to store.
func (t *PutawayTask) Quantity() int {
	return t.quantity
}

// BatchID returns the received batch.
func (t *PutawayTask) BatchID() string {
	return t.batchID
}

// Source returns the receiving dock.
func (t *PutawayTask) Source() kernel.Location {
	return t.source
}

// Suggested returns the destination bin.
func (t *PutawayTask) Suggested() kernel.Location {
	return t.suggested
}

// Priority returns the task priority.
func (t *PutawayTask) Priority() order.Priority {
	return t.priority
}

// Status returns the task state.
func (t *PutawayTask) Status() PutawayStatus {
	return t.status
}

// CreatedAt returns the receipt time.
func (t *PutawayTask) CreatedAt() time.Time {
	return t.createdAt
}

// Complete marks the goods as stored. There is no scan gate: the receipt already proved provenance.
//
// Returns:
//   - an invalid-value error if the task is already completed
func (t *PutawayTask) Complete() error {
	if t.status == PutawayCompleted {
		return errs.NewValueIsInvalidErrorWithCause("putaway task", fmt.Errorf("task %s is already completed", t.id))
	}
	t.status = PutawayCompleted
	return nil
}

// setID validates and sets the task identity.
// This is a private method used only during construction.
func (t *PutawayTask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

// setReceiptRef trims and sets the receipt reference.
// This is a private method used only during construction.
func (t *PutawayTask) setReceiptRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return errs.NewValueIsRequiredError("receipt reference")
	}
	t.receiptRef = strings.TrimSpace(ref)
	return nil
}

// setSKU trims and sets the SKU.
// This is a private method used only during construction.
func (t *PutawayTask) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	t.sku = strings.TrimSpace(sku)
	return nil
}

// setQuantity sets the quantity, which must be positive.
// This is a private method used only during construction.
func (t *PutawayTask) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	t.quantity = quantity
	return nil
}

// setBatchID trims and sets the batch reference.
// This is a private method used only during construction.
func (t *PutawayTask) setBatchID(batchID string) error {
	if strings.TrimSpace(batchID) == "" {
		return errs.NewValueIsRequiredError("batch id")
	}
	t.batchID = strings.TrimSpace(batchID)
	return nil
}

// setSuggested validates and sets the destination bin.
// This is a private method used only during construction.
func (t *PutawayTask) setSuggested(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	t.suggested = location
	return nil
}
