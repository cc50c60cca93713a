package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Order is the sales order aggregate root.
//
// Invariants:
//   - an order has at least one line and no SKU appears on two lines
//   - status only moves forward along the edges defined by Status
//   - every status change is recorded as a StatusChanged event
//
// Lines are fixed at intake. The order never touches the stock ledger itself;
// command handlers coordinate the two inside one unit of work.
type Order struct {
	// id is the technical identity used in URLs and foreign keys.
	id kernel.UUID

	// number is the human readable order number, unique per engine.
	number string

	// customer is the account the credit check is run against.
	customer string

	// priority selects the compliance rules and the picking wave.
	priority Priority

	// shippingAddress is screened against restricted destinations.
	shippingAddress string

	// lines are the ordered SKUs in intake order.
	lines []Line

	// status is the current position in the fulfillment pipeline.
	status Status

	// createdAt is the intake time in UTC.
	createdAt time.Time

	// events holds status changes not yet pulled by the repository.
	events []StatusChanged

	isConstructed bool
}

// NewOrder creates a Confirmed order. Lines must be non-empty and carry distinct SKUs.
//
// Parameters:
//   - id: identity, must not be the nil UUID
//   - number: order number, trimmed and required
//   - customer: trimmed and required
//   - priority: a valid Priority
//   - shippingAddress: trimmed and required
//   - lines: at least one constructed Line, SKUs distinct
//   - createdAt: stored in UTC
//
// Returns:
//   - the new Confirmed order, with no events recorded
//   - the joined validation errors otherwise
//
// Example:
//
//	line, _ := order.NewLine("ELEC-001", 2, decimal.RequireFromString("4.99"))
//	o, err := order.NewOrder(kernel.NewUUID(), "SO-1001", "Acme Corp",
//	    order.High, "1 Main St, Springfield", []order.Line{line}, time.Now())
func NewOrder(
	id kernel.UUID,
	number, customer string,
	priority Priority,
	shippingAddress string,
	lines []Line,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Confirmed,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomer(customer),
		o.setPriority(priority),
		o.setShippingAddress(shippingAddress),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rehydrates a stored order without validation. Repositories use
// it; business code creates orders through NewOrder.
func RestoreOrder(
	id kernel.UUID,
	number, customer string,
	priority Priority,
	shippingAddress string,
	lines []Line,
	status Status,
	createdAt time.Time,
) *Order {
	return &Order{
		id:              id,
		number:          number,
		customer:        customer,
		priority:        priority,
		shippingAddress: shippingAddress,
		lines:           append([]Line(nil), lines...),
		status:          status,
		createdAt:       createdAt,
		isConstructed:   true,
	}
}

// Validate fails for a nil or zero Order.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares identities only.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identity.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human readable order number.
func (o *Order) Number() string {
	return o.number
}

// Customer returns the customer account.
func (o *Order) Customer() string {
	return o.customer
}

// Priority returns the order priority.
func (o *Order) Priority() Priority {
	return o.priority
}

// ShippingAddress returns the destination.
func (o *Order) ShippingAddress() string {
	return o.shippingAddress
}

// Status returns the current pipeline position.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the intake time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Lines returns a copy in order.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// Line returns the line at index, or an out-of-range error. Pick scans
// address lines by index.
func (o *Order) Line(index int) (Line, error) {
	if index < 0 || index >= len(o.lines) {
		return Line{}, errs.NewValueIsOutOfRangeError("lineIndex", index, 0, len(o.lines)-1)
	}
	return o.lines[index], nil
}

// LineSKUs returns the line SKUs in line order.
func (o *Order) LineSKUs() []string {
	skus := make([]string, 0, len(o.lines))
	for _, l := range o.lines {
		skus = append(skus, l.sku)
	}
	return skus
}

// HasSKU reports whether any line orders sku.
func (o *Order) HasSKU(sku string) bool {
	for _, l := range o.lines {
		if l.sku == sku {
			return true
		}
	}
	return false
}

// Total sums every line total.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Total())
	}
	return total
}

// StartCreditCheck moves a Confirmed order to CreditCheck.
//
// Returns:
//   - nil after recording a StatusChanged event
//   - *IllegalTransitionError from any other status, with nothing recorded
func (o *Order) StartCreditCheck() error {
	return o.apply(o.status.StartCreditCheck)
}

// StartComplianceScreening moves a CreditCheck order to ComplianceScreening.
func (o *Order) StartComplianceScreening() error {
	return o.apply(o.status.StartComplianceScreening)
}

// StartPicking moves an order that is still being validated to WarehousePick.
//
// This method enforces the following business rules:
//   - the order must be Confirmed, CreditCheck or ComplianceScreening
//   - stock must already be reserved by the caller, in the same unit of work
//
// Returns:
//   - nil after recording a StatusChanged event
//   - *IllegalTransitionError for an order already in picking or beyond
//
// Example:
//
//	if err := allocator.Allocate(o, items); err != nil {
//	    return err
//	}
//	if err := o.StartPicking(); err != nil {
//	    return err
//	}
//	return repo.Update(ctx, o)
func (o *Order) StartPicking() error {
	return o.apply(o.status.StartPicking)
}

// Ship moves a picked order to Shipped.
//
// This method enforces the following business rules:
//   - the order must be in WarehousePick
//   - the pack gate is checked by the caller before, see warehouse.CheckPackingComplete
//
// Returns:
//   - nil after recording a StatusChanged event
//   - *IllegalTransitionError from any other status
func (o *Order) Ship() error {
	return o.apply(o.status.Ship)
}

// Invoice moves a Shipped order to Invoiced, the terminal status.
//
// Returns:
//   - nil after recording a StatusChanged event
//   - *IllegalTransitionError from any other status; callers that want
//     repeated invoicing to be a no-op check for Invoiced first
func (o *Order) Invoice() error {
	return o.apply(o.status.Invoice)
}

// PullEvents returns the status changes recorded since the last call and forgets them.
// Repositories call it in Update; the unit of work publishes the events after commit.
func (o *Order) PullEvents() []StatusChanged {
	events := o.events
	o.events = nil
	return events
}

// apply runs transition and records the event only when it succeeds.
func (o *Order) apply(transition func() (Status, error)) error {
	next, err := transition()
	if err != nil {
		return err
	}
	o.events = append(o.events, StatusChanged{
		OrderID:     o.id,
		OrderNumber: o.number,
		From:        o.status,
		To:          next,
		OccurredAt:  time.Now().UTC(),
	})
	o.status = next
	return nil
}

// setID validates and sets the order identity.
// This is a private method used only during construction.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setNumber trims and sets the order number.
// This is a private method used only during construction.
func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.number = number
	return nil
}

// setCustomer trims and sets the customer account.
// This is a private method used only during construction.
func (o *Order) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	o.customer = customer
	return nil
}

// setPriority validates and sets the priority.
// This is a private method used only during construction.
func (o *Order) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	o.priority = priority
	return nil
}

// setShippingAddress trims and sets the destination.
// This is a private method used only during construction.
func (o *Order) setShippingAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}
	o.shippingAddress = address
	return nil
}

// setLines copies lines after checking each one and rejecting repeated SKUs.
// The first bad line stops the check; its index is in the error.
// This is a private method used only during construction.
func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	seen := make(map[string]struct{}, len(lines))
	for i, l := range lines {
		if err := l.Validate(); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if _, dup := seen[l.sku]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("SKU %s appears more than once", l.sku))
		}
		seen[l.sku] = struct{}{}
	}
	o.lines = append([]Line(nil), lines...)
	return nil
}
