package warehouse

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// TaskStatus is the state of a picking task.
type TaskStatus int

const (
	// Pending tasks still wait for a matching scan.
	Pending TaskStatus = iota
	// Picked tasks passed VerifyScan and were recorded in the PickState.
	Picked
)

// String returns the wire name.
func (s TaskStatus) String() string {
	if s == Picked {
		return "Picked"
	}
	return "Pending"
}

// PickingTask is one order line to fetch from its storage location.
//
// Tasks are projections: NewPickingTask copies what a picker needs from the
// order and the stock item, and nothing writes a task back.
type PickingTask struct {
	// ref is the (order, line) pair and the source of the task id.
	ref LineRef
	// orderNumber is shown on the picking list.
	orderNumber string
	// priority is copied from the order and drives wave grouping.
	priority order.Priority
	// sku and quantity are copied from the order line.
	sku      string
	quantity int
	// location is the bin the SKU is stored in.
	location kernel.Location
	// status is Picked once the line is in the PickState.
	status TaskStatus
}

// NewPickingTask derives the task for line index of o. The caller has already checked the index.
func NewPickingTask(o *order.Order, index int, line order.Line, location kernel.Location, status TaskStatus) PickingTask {
	return PickingTask{
		ref:         LineRef{OrderID: o.ID(), LineIndex: index},
		orderNumber: o.Number(),
		priority:    o.Priority(),
		sku:         line.SKU(),
		quantity:    line.Quantity(),
		location:    location,
		status:      status,
	}
}

// ID returns "<orderId>-item-<lineIndex>".
func (t PickingTask) ID() string {
	return t.ref.TaskID()
}

// Ref returns the order line the task was derived from.
func (t PickingTask) Ref() LineRef {
	return t.ref
}

// OrderID returns the owning order.
func (t PickingTask) OrderID() kernel.UUID {
	return t.ref.OrderID
}

// LineIndex returns the position of the line on the order.
func (t PickingTask) LineIndex() int {
	return t.ref.LineIndex
}

// OrderNumber returns the human readable order number.
func (t PickingTask) OrderNumber() string {
	return t.orderNumber
}

// Priority returns the order priority.
func (t PickingTask) Priority() order.Priority {
	return t.priority
}

// SKU returns the SKU to pick.
func (t PickingTask) SKU() string {
	return t.sku
}

// Quantity returns the number of units to pick.
func (t PickingTask) Quantity() int {
	return t.quantity
}

// Location returns the bin to pick from.
func (t PickingTask) Location() kernel.Location {
	return t.location
}

// Zone returns the zone of the bin, used by zone grouping.
func (t PickingTask) Zone() string {
	return t.location.Zone()
}

// Status returns Pending or Picked.
func (t PickingTask) Status() TaskStatus {
	return t.status
}

// VerifyScan passes only when both scanned values equal the task's location and SKU exactly.
//
// Returns:
//   - nil on a match
//   - *MismatchError naming the expected and scanned values otherwise
func (t PickingTask) VerifyScan(scannedLocation, scannedSKU string) error {
	if t.location.Matches(scannedLocation) && t.sku == scannedSKU {
		return nil
	}
	return &MismatchError{
		TaskID:           t.ID(),
		ExpectedLocation: t.location.Code(),
		ScannedLocation:  scannedLocation,
		ExpectedSKU:      t.sku,
		ScannedSKU:       scannedSKU,
	}
}
