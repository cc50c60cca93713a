package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrValidateOrderCommandIsNotConstructed is returned by Validate for a zero value.
var ErrValidateOrderCommandIsNotConstructed = errors.New(
	"ValidateOrderCommand must be created via NewValidateOrderCommand constructor",
)

// ValidateOrderCommand runs the validation pipeline against a Confirmed order
// and, when every check passes, reserves its stock and releases it to picking.
type ValidateOrderCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewValidateOrderCommand rejects the nil order id.
func NewValidateOrderCommand(orderID kernel.UUID) (ValidateOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ValidateOrderCommand{}, err
	}
	return ValidateOrderCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ValidateOrderCommand) Validate() error {
	return c.guard.Validate(ErrValidateOrderCommandIsNotConstructed)
}

// OrderID returns the order to validate.
func (c ValidateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
