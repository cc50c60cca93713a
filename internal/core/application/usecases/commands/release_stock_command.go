package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrReleaseStockCommandIsNotConstructed is returned by Validate for a zero value.
var ErrReleaseStockCommandIsNotConstructed = errors.New(
	"ReleaseStockCommand must be created via NewReleaseStockCommand constructor",
)

// ReleaseStockCommand returns reserved units to available, e.g. for a return or restock.
type ReleaseStockCommand struct {
	sku      string
	quantity int

	guard guard.ConstructorGuard
}

// NewReleaseStockCommand requires a SKU and a positive quantity.
func NewReleaseStockCommand(sku string, quantity int) (ReleaseStockCommand, error) {
	sku = strings.TrimSpace(sku)
	var skuErr, qtyErr error
	if sku == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	}
	if quantity <= 0 {
		qtyErr = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if err := errors.Join(skuErr, qtyErr); err != nil {
		return ReleaseStockCommand{}, err
	}
	return ReleaseStockCommand{sku: sku, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStockCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStockCommandIsNotConstructed)
}

// SKU returns the SKU to release.
func (c ReleaseStockCommand) SKU() string {
	return c.sku
}

// Quantity returns the requested amount; the handler may release less.
func (c ReleaseStockCommand) Quantity() int {
	return c.quantity
}
