package services

import (
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
)

// StockAllocator moves order quantities through the ledger. It works on
// items the caller has locked and persists nothing itself.
type StockAllocator struct{}

// NewStockAllocator returns a stateless allocator.
func NewStockAllocator() StockAllocator {
	return StockAllocator{}
}

// Allocate reserves every line of o against items (keyed by SKU). If any line
// fails, the lines already reserved are released again and a
// *inventory.ReservationConflictError wrapping the line failure is returned.
//
// Returns:
//   - nil when every line was reserved
//   - *inventory.ReservationConflictError otherwise, with items unchanged
func (a StockAllocator) Allocate(o *order.Order, items map[string]*inventory.StockItem) error {
	if err := o.Validate(); err != nil {
		return err
	}

	reserved := make([]order.Line, 0, len(o.Lines()))
	for _, line := range o.Lines() {
		err := a.reserveLine(line, items)
		if err != nil {
			a.releaseLines(reserved, items)
			return &inventory.ReservationConflictError{SKU: line.SKU(), Cause: err}
		}
		reserved = append(reserved, line)
	}
	return nil
}

// Consume ships every line of o. Items may be left partly mutated on error;
// callers discard them by rolling back.
func (a StockAllocator) Consume(o *order.Order, items map[string]*inventory.StockItem) error {
	if err := o.Validate(); err != nil {
		return err
	}
	for _, line := range o.Lines() {
		item, ok := items[line.SKU()]
		if !ok {
			return inventory.NewUnknownSKUError(line.SKU())
		}
		if err := item.Consume(line.Quantity()); err != nil {
			return err
		}
	}
	return nil
}

func (a StockAllocator) reserveLine(line order.Line, items map[string]*inventory.StockItem) error {
	item, ok := items[line.SKU()]
	if !ok {
		return inventory.NewUnknownSKUError(line.SKU())
	}
	return item.Reserve(line.Quantity())
}

// releaseLines undoes reserveLine for lines already reserved.
func (a StockAllocator) releaseLines(lines []order.Line, items map[string]*inventory.StockItem) {
	for i := len(lines) - 1; i >= 0; i-- {
		// Release only fails on a non-positive quantity, which a constructed line cannot have.
		_, _ = items[lines[i].SKU()].Release(lines[i].Quantity())
	}
}
