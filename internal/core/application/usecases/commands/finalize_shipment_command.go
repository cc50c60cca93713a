package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrFinalizeShipmentCommandIsNotConstructed is returned by Validate for a zero value.
var ErrFinalizeShipmentCommandIsNotConstructed = errors.New(
	"FinalizeShipmentCommand must be created via NewFinalizeShipmentCommand constructor",
)

// FinalizeShipmentCommand closes packing and dispatches the order.
type FinalizeShipmentCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeShipmentCommand rejects the nil order id.
func NewFinalizeShipmentCommand(orderID kernel.UUID) (FinalizeShipmentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return FinalizeShipmentCommand{}, err
	}
	return FinalizeShipmentCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeShipmentCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeShipmentCommandIsNotConstructed)
}

// OrderID returns the order to ship.
func (c FinalizeShipmentCommand) OrderID() kernel.UUID {
	return c.orderID
}
