// Package receiving tracks purchase orders and how much of each line has arrived.
package receiving

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrPurchaseOrderIsNotConstructed is returned by PurchaseOrder.Validate for a zero value.
var ErrPurchaseOrderIsNotConstructed = errors.New("PurchaseOrder must be created via NewPurchaseOrder constructor")

// Status tracks how much of a purchase order has arrived.
type Status int

const (
	// StatusUnknown is the zero value and never valid.
	StatusUnknown Status = iota
	// Pending means nothing has been received yet.
	Pending
	// Partial means something was received but at least one line is short.
	Partial
	// Completed means every line reached its expected quantity. It is final.
	Completed
)

// String returns the wire name, or "Unknown" for an invalid value.
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Partial:
		return "Partial"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseStatus is the inverse of String, case-insensitive.
func ParseStatus(s string) (Status, error) {
	for _, st := range []Status{Pending, Partial, Completed} {
		if strings.EqualFold(st.String(), strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("purchase order status", fmt.Errorf("%q is not valid", s))
}

// Line is the expected and received quantity of one SKU.
type Line struct {
	// SKU is unique within the purchase order.
	SKU string
	// ExpectedQty is what the supplier promised, always positive.
	ExpectedQty int
	// ReceivedQty may exceed ExpectedQty; over-delivery is booked as received.
	ReceivedQty int
}

// Received is true once at least the expected quantity has arrived.
func (l Line) Received() bool {
	return l.ReceivedQty >= l.ExpectedQty
}

// StatusString returns "Received" or "Pending" for the line view.
func (l Line) StatusString() string {
	if l.Received() {
		return "Received"
	}
	return "Pending"
}

// PurchaseOrder is an inbound order placed with a supplier.
//
// Invariants:
//   - at least one line, SKUs distinct, expected quantities positive
//   - status is Completed exactly when every line is received
//   - a Completed purchase order accepts no further receipts
type PurchaseOrder struct {
	// id is the technical identity.
	id kernel.UUID
	// number is the supplier facing reference, also used as receipt ref.
	number string
	// supplier is the vendor name.
	supplier string
	// expectedDate is the promised delivery date in UTC.
	expectedDate time.Time
	// lines are kept in creation order.
	lines []Line
	// status is derived from lines after every receipt.
	status Status

	isConstructed bool
}

// NewPurchaseOrder creates a Pending purchase order. Received quantities on
// the input lines are ignored.
//
// Returns:
//   - the purchase order
//   - the joined validation errors otherwise
//
// Example:
//
//	po, err := receiving.NewPurchaseOrder(kernel.NewUUID(), "PO-2001", "Acme Supply",
//	    time.Now().AddDate(0, 0, 7), []receiving.Line{{SKU: "ELEC-001", ExpectedQty: 50}})
func NewPurchaseOrder(id kernel.UUID, number, supplier string, expectedDate time.Time, lines []Line) (*PurchaseOrder, error) {
	po := &PurchaseOrder{
		expectedDate:  expectedDate.UTC(),
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		po.setID(id),
		po.setNumber(number),
		po.setSupplier(supplier),
		po.setLines(lines),
	); err != nil {
		return nil, err
	}
	return po, nil
}

// RestorePurchaseOrder rehydrates a stored purchase order without validation.
func RestorePurchaseOrder(id kernel.UUID, number, supplier string, expectedDate time.Time, lines []Line, status Status) *PurchaseOrder {
	return &PurchaseOrder{
		id:            id,
		number:        number,
		supplier:      supplier,
		expectedDate:  expectedDate,
		lines:         append([]Line(nil), lines...),
		status:        status,
		isConstructed: true,
	}
}

// Validate fails for a nil or zero purchase order.
func (p *PurchaseOrder) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPurchaseOrderIsNotConstructed
	}
	return nil
}

// ID returns the identity.
func (p *PurchaseOrder) ID() kernel.UUID {
	return p.id
}

// Number returns the purchase order number.
func (p *PurchaseOrder) Number() string {
	return p.number
}

// Supplier returns the vendor name.
func (p *PurchaseOrder) Supplier() string {
	return p.supplier
}

// ExpectedDate returns the promised delivery date.
func (p *PurchaseOrder) ExpectedDate() time.Time {
	return p.expectedDate
}

// Lines returns a copy in creation order.
func (p *PurchaseOrder) Lines() []Line {
	return append([]Line(nil), p.lines...)
}

// Status returns the receipt progress.
func (p *PurchaseOrder) Status() Status {
	return p.status
}

// Receive books qty against the line for sku and recomputes the status:
// Completed when every line is received, Partial otherwise.
//
// Returns:
//   - an invalid-value error for a non-positive qty or a Completed order
//   - errs.ObjectNotFoundError if no line has sku
func (p *PurchaseOrder) Receive(sku string, qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	if p.status == Completed {
		return errs.NewValueIsInvalidErrorWithCause("purchase order", fmt.Errorf("%s is already completed", p.number))
	}
	for i := range p.lines {
		if p.lines[i].SKU != sku {
			continue
		}
		p.lines[i].ReceivedQty += qty
		p.status = p.computeStatus()
		return nil
	}
	return errs.NewObjectNotFoundError("sku", sku)
}

// computeStatus is Completed once every line is received and Partial otherwise.
// It is only called after a receipt, so Pending never comes out of it.
func (p *PurchaseOrder) computeStatus() Status {
	for _, l := range p.lines {
		if !l.Received() {
			return Partial
		}
	}
	return Completed
}

// setID validates and sets the identity.
// This is a private method used only during construction.
func (p *PurchaseOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

// setNumber trims and sets the purchase order number.
// This is a private method used only during construction.
func (p *PurchaseOrder) setNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return errs.NewValueIsRequiredError("purchase order number")
	}
	p.number = strings.TrimSpace(number)
	return nil
}

// setSupplier trims and sets the vendor name.
// This is a private method used only during construction.
func (p *PurchaseOrder) setSupplier(supplier string) error {
	if strings.TrimSpace(supplier) == "" {
		return errs.NewValueIsRequiredError("supplier")
	}
	p.supplier = strings.TrimSpace(supplier)
	return nil
}

// setLines trims the SKUs, rejects repeats and resets received quantities.
// This is a private method used only during construction.
func (p *PurchaseOrder) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	seen := make(map[string]struct{}, len(lines))
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		sku := strings.TrimSpace(l.SKU)
		if sku == "" {
			return errs.NewValueIsRequiredError("line sku")
		}
		if l.ExpectedQty <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("expected quantity", fmt.Errorf("%d is not greater than 0", l.ExpectedQty))
		}
		if _, dup := seen[sku]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("SKU %s appears more than once", sku))
		}
		seen[sku] = struct{}{}
		out = append(out, Line{SKU: sku, ExpectedQty: l.ExpectedQty})
	}
	p.lines = out
	return nil
}
