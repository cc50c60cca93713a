package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrIssueInvoiceCommandIsNotConstructed is returned by Validate for a zero value.
var ErrIssueInvoiceCommandIsNotConstructed = errors.New(
	"IssueInvoiceCommand must be created via NewIssueInvoiceCommand constructor",
)

// IssueInvoiceCommand bills a shipped order.
type IssueInvoiceCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewIssueInvoiceCommand rejects the nil order id.
func NewIssueInvoiceCommand(orderID kernel.UUID) (IssueInvoiceCommand, error) {
	if err := orderID.Validate(); err != nil {
		return IssueInvoiceCommand{}, err
	}
	return IssueInvoiceCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c IssueInvoiceCommand) Validate() error {
	return c.guard.Validate(ErrIssueInvoiceCommandIsNotConstructed)
}

// OrderID returns the order to invoice.
func (c IssueInvoiceCommand) OrderID() kernel.UUID {
	return c.orderID
}
