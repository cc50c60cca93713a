package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrRegisterStockItemCommandIsNotConstructed is returned by Validate for a zero value.
var ErrRegisterStockItemCommandIsNotConstructed = errors.New(
	"RegisterStockItemCommand must be created via NewRegisterStockItemCommand constructor",
)

// RegisterStockItemCommand adds a SKU to the ledger. The item it carries is
// already validated by the ledger's own constructor.
type RegisterStockItemCommand struct {
	item *inventory.StockItem

	guard guard.ConstructorGuard
}

// NewRegisterStockItemCommand builds the StockItem up front so that the
// handler only has to check for duplicates.
func NewRegisterStockItemCommand(
	sku, name string,
	location kernel.Location,
	reorderPoint int,
	unitPrice decimal.Decimal,
	onHand int,
) (RegisterStockItemCommand, error) {
	item, err := inventory.NewStockItem(sku, name, location, reorderPoint, unitPrice, onHand)
	if err != nil {
		return RegisterStockItemCommand{}, err
	}
	return RegisterStockItemCommand{item: item, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterStockItemCommand) Validate() error {
	return c.guard.Validate(ErrRegisterStockItemCommandIsNotConstructed)
}

// Item returns the SKU to register.
func (c RegisterStockItemCommand) Item() *inventory.StockItem {
	return c.item
}
