package commands

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCreateOrderCommandIsNotConstructed is returned by Validate for a zero value.
var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLineInput is one requested line. A zero UnitPrice takes the price from the stock ledger.
type OrderLineInput struct {
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// CreateOrderCommand represents order intake: a new sales order for a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "PT Sentosa", order.High, "Jakarta",
//	    []OrderLineInput{{SKU: "ELEC-001", Quantity: 20}})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	number, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	customer        string
	priority        order.Priority
	shippingAddress string
	lines           []OrderLineInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order header and every line.
// All field errors are joined, so a client sees every problem at once.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customer string,
	priority order.Priority,
	shippingAddress string,
	lines []OrderLineInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomer(customer),
		cmd.setPriority(priority),
		cmd.setShippingAddress(shippingAddress),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identity the new order will get.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Customer returns the trimmed customer name.
func (c CreateOrderCommand) Customer() string {
	return c.customer
}

// Priority returns the requested priority.
func (c CreateOrderCommand) Priority() order.Priority {
	return c.priority
}

// ShippingAddress returns the trimmed destination.
func (c CreateOrderCommand) ShippingAddress() string {
	return c.shippingAddress
}

// Lines returns a copy.
func (c CreateOrderCommand) Lines() []OrderLineInput {
	return append([]OrderLineInput(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer string) error {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setPriority(priority order.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	c.priority = priority
	return nil
}

func (c *CreateOrderCommand) setShippingAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("shipping address")
	}
	c.shippingAddress = address
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLineInput) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for i, l := range lines {
		if strings.TrimSpace(l.SKU) == "" {
			return errs.NewValueIsRequiredError(fmt.Sprintf("lines[%d].sku", i))
		}
		if l.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", l.Quantity))
		}
	}
	c.lines = append([]OrderLineInput(nil), lines...)
	return nil
}
