package inventory

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// StockItem is the ledger row for one SKU.
//
// Invariants:
//   - 0 <= allocated <= onHand
//   - available = onHand - allocated is never negative
//   - batch ids are unique within the SKU
//
// A row loaded from storage may break the first invariant; every mutating
// method checks it first and returns *InvariantViolationError instead of
// making the damage worse.
type StockItem struct {
	// sku is the unique business key, trimmed and never empty.
	sku string

	// name is the display name shown on picking lists.
	name string

	// location is the storage bin the SKU is normally picked from.
	location kernel.Location

	// onHand counts physical units in the warehouse.
	onHand int

	// allocated counts units reserved for validated orders and not yet shipped.
	allocated int

	// reorderPoint is the availability at or below which the SKU is Low.
	reorderPoint int

	// unitPrice is used to value order lines for the credit check.
	unitPrice decimal.Decimal

	// batches lists received lots in receipt order.
	batches []Batch

	isConstructed bool
}

// NewStockItem registers a SKU with an opening on-hand quantity and nothing allocated.
//
// Parameters:
//   - sku: business key, surrounding whitespace is trimmed
//   - name: display name, required
//   - location: default storage bin, must be valid
//   - reorderPoint: must not be negative
//   - unitPrice: must not be negative
//   - onHand: opening quantity, must not be negative
//
// Returns:
//   - the new StockItem
//   - every validation error joined together, so one call reports all bad fields
//
// Example:
//
//	item, err := inventory.NewStockItem("ELEC-001", "USB-C cable",
//	    kernel.DefaultStorage(), 10, decimal.RequireFromString("4.99"), 100)
func NewStockItem(
	sku, name string,
	location kernel.Location,
	reorderPoint int,
	unitPrice decimal.Decimal,
	onHand int,
) (*StockItem, error) {
	item := &StockItem{isConstructed: true}

	if err := errors.Join(
		item.setSKU(sku),
		item.setName(name),
		item.setLocation(location),
		item.setReorderPoint(reorderPoint),
		item.setUnitPrice(unitPrice),
		item.setOnHand(onHand),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreStockItem rehydrates a stored row as-is. Quantities are not checked
// here so that a corrupted row can still be loaded and reported by CheckInvariant.
func RestoreStockItem(
	sku, name string,
	location kernel.Location,
	onHand, allocated, reorderPoint int,
	unitPrice decimal.Decimal,
	batches []Batch,
) *StockItem {
	return &StockItem{
		sku:           sku,
		name:          name,
		location:      location,
		onHand:        onHand,
		allocated:     allocated,
		reorderPoint:  reorderPoint,
		unitPrice:     unitPrice,
		batches:       append([]Batch(nil), batches...),
		isConstructed: true,
	}
}

// Validate fails for a nil or zero StockItem.
func (s *StockItem) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrStockItemIsNotConstructed
	}
	return nil
}

// SKU returns the business key.
func (s *StockItem) SKU() string {
	return s.sku
}

// Name returns the display name.
func (s *StockItem) Name() string {
	return s.name
}

// Location returns the default storage bin.
func (s *StockItem) Location() kernel.Location {
	return s.location
}

// OnHand returns the physical quantity.
func (s *StockItem) OnHand() int {
	return s.onHand
}

// Allocated returns the reserved quantity.
func (s *StockItem) Allocated() int {
	return s.allocated
}

// ReorderPoint returns the Low threshold.
func (s *StockItem) ReorderPoint() int {
	return s.reorderPoint
}

// UnitPrice returns the price of one unit.
func (s *StockItem) UnitPrice() decimal.Decimal {
	return s.unitPrice
}

// Batches returns a copy in receipt order.
func (s *StockItem) Batches() []Batch {
	return append([]Batch(nil), s.batches...)
}

// Available is max(0, onHand-allocated).
func (s *StockItem) Available() int {
	return max(0, s.onHand-s.allocated)
}

// Level classifies the SKU: nothing available is OutOfStock, at or below the reorder point is Low.
func (s *StockItem) Level() Level {
	available := s.Available()
	switch {
	case available <= 0:
		return OutOfStock
	case available <= s.reorderPoint:
		return Low
	default:
		return InStock
	}
}

// CheckInvariant reports negative quantities or allocated > onHand.
func (s *StockItem) CheckInvariant() error {
	if s.onHand < 0 || s.allocated < 0 || s.allocated > s.onHand {
		return &InvariantViolationError{SKU: s.sku, OnHand: s.onHand, Allocated: s.allocated}
	}
	return nil
}

// Reserve allocates qty units. Nothing changes on failure.
//
// Returns:
//   - an invalid-value error if qty is not positive
//   - *InvariantViolationError if the row is already corrupted
//   - *InsufficientStockError if qty exceeds Available
func (s *StockItem) Reserve(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if err := s.CheckInvariant(); err != nil {
		return err
	}
	if available := s.Available(); qty > available {
		return &InsufficientStockError{SKU: s.sku, Requested: qty, Available: available}
	}
	s.allocated += qty
	return nil
}

// Release returns up to qty allocated units and reports how many were released.
// Releasing more than is allocated is not an error: the surplus is ignored and
// allocated stops at zero.
//
// Returns:
//   - the number of units actually released
//   - an invalid-value error if qty is not positive
func (s *StockItem) Release(qty int) (int, error) {
	if err := validateQuantity(qty); err != nil {
		return 0, err
	}
	released := min(qty, max(0, s.allocated))
	s.allocated = max(0, s.allocated-qty)
	return released, nil
}

// Receive books qty units into stock and appends batch.
//
// Returns:
//   - an invalid-value error if qty is not positive or batch reuses a known id
//   - the batch validation error for an unconstructed batch
func (s *StockItem) Receive(qty int, batch Batch) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if err := batch.Validate(); err != nil {
		return err
	}
	for _, existing := range s.batches {
		if existing.id == batch.id {
			return errs.NewValueIsInvalidErrorWithCause("batch id", fmt.Errorf("batch %s already received", batch.id))
		}
	}
	s.onHand += qty
	s.batches = append(s.batches, batch)
	return nil
}

// Consume ships qty units of the SKU.
//
// onHand drops by qty and allocated by at most qty, so a reservation that was
// released back to the pool after validation does not block the shipment.
// allocated <= onHand holds afterwards whenever it held before. Only a
// shipment larger than onHand breaks the ledger, and then nothing changes.
//
// Returns:
//   - *InvariantViolationError if onHand would go negative or the row is already corrupted.
func (s *StockItem) Consume(qty int) error {
	if err := validateQuantity(qty); err != nil {
		return err
	}
	if err := s.CheckInvariant(); err != nil {
		return err
	}
	if qty > s.onHand {
		return &InvariantViolationError{SKU: s.sku, OnHand: s.onHand, Allocated: s.allocated}
	}
	s.allocated -= min(qty, s.allocated)
	s.onHand -= qty
	return nil
}

// UpdateBatchCompliance sets the review outcome of one batch.
//
// Returns:
//   - an error for an invalid status
//   - errs.ObjectNotFoundError if no batch has batchID
func (s *StockItem) UpdateBatchCompliance(batchID string, status ComplianceStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}
	for i := range s.batches {
		if s.batches[i].id == batchID {
			s.batches[i].compliance = status
			return nil
		}
	}
	return errs.NewObjectNotFoundError("batchId", batchID)
}

// setSKU trims and sets the business key.
// This is a private method used only during construction.
func (s *StockItem) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	s.sku = sku
	return nil
}

// setName trims and sets the display name.
// This is a private method used only during construction.
func (s *StockItem) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	s.name = name
	return nil
}

// setLocation validates and sets the default bin.
// This is a private method used only during construction.
func (s *StockItem) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

// setReorderPoint sets the Low threshold, which must not be negative.
// This is a private method used only during construction.
func (s *StockItem) setReorderPoint(reorderPoint int) error {
	if reorderPoint < 0 {
		return errs.NewValueIsInvalidErrorWithCause("reorder point", fmt.Errorf("%d is negative", reorderPoint))
	}
	s.reorderPoint = reorderPoint
	return nil
}

// setUnitPrice sets the unit price, which must not be negative.
// This is a private method used only during construction.
func (s *StockItem) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", price))
	}
	s.unitPrice = price
	return nil
}

// setOnHand sets the opening quantity, which must not be negative.
// This is a private method used only during construction.
func (s *StockItem) setOnHand(onHand int) error {
	if onHand < 0 {
		return errs.NewValueIsInvalidErrorWithCause("on hand", fmt.Errorf("%d is negative", onHand))
	}
	s.onHand = onHand
	return nil
}

// validateQuantity rejects quantities that are not positive. Every ledger
// movement goes through it.
func validateQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	return nil
}
