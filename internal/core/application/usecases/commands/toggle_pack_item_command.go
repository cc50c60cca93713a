package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrTogglePackItemCommandIsNotConstructed is returned by Validate for a zero value.
var ErrTogglePackItemCommandIsNotConstructed = errors.New(
	"TogglePackItemCommand must be created via NewTogglePackItemCommand constructor",
)

// TogglePackItemCommand flips the verified mark of one SKU in an order's packing session.
type TogglePackItemCommand struct {
	orderID kernel.UUID
	sku     string

	guard guard.ConstructorGuard
}

// NewTogglePackItemCommand rejects the nil order id and an empty SKU.
func NewTogglePackItemCommand(orderID kernel.UUID, sku string) (TogglePackItemCommand, error) {
	cmd := TogglePackItemCommand{sku: strings.TrimSpace(sku), guard: guard.NewConstructorGuard()}

	var skuErr error
	if cmd.sku == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	}
	if err := errors.Join(orderID.Validate(), skuErr); err != nil {
		return TogglePackItemCommand{}, err
	}
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TogglePackItemCommand) Validate() error {
	return c.guard.Validate(ErrTogglePackItemCommandIsNotConstructed)
}

// OrderID returns the order being packed.
func (c TogglePackItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SKU returns the SKU to flip.
func (c TogglePackItemCommand) SKU() string {
	return c.sku
}
