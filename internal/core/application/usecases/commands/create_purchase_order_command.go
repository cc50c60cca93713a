package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCreatePurchaseOrderCommandIsNotConstructed is returned by Validate for a zero value.
var ErrCreatePurchaseOrderCommandIsNotConstructed = errors.New(
	"CreatePurchaseOrderCommand must be created via NewCreatePurchaseOrderCommand constructor",
)

// PurchaseOrderLineInput is one expected SKU and quantity.
type PurchaseOrderLineInput struct {
	SKU         string
	ExpectedQty int
}

// CreatePurchaseOrderCommand registers an expected delivery from a supplier.
type CreatePurchaseOrderCommand struct {
	id           kernel.UUID
	supplier     string
	expectedDate time.Time
	lines        []PurchaseOrderLineInput

	guard guard.ConstructorGuard
}

// NewCreatePurchaseOrderCommand trims the supplier and requires at least one line.
func NewCreatePurchaseOrderCommand(
	id kernel.UUID,
	supplier string,
	expectedDate time.Time,
	lines []PurchaseOrderLineInput,
) (CreatePurchaseOrderCommand, error) {
	cmd := CreatePurchaseOrderCommand{
		supplier:     strings.TrimSpace(supplier),
		expectedDate: expectedDate,
		guard:        guard.NewConstructorGuard(),
	}

	var supplierErr, linesErr error
	if cmd.supplier == "" {
		supplierErr = errs.NewValueIsRequiredError("supplier")
	}
	if len(lines) == 0 {
		linesErr = errs.NewValueIsRequiredError("lines")
	}
	for i, l := range lines {
		if l.ExpectedQty <= 0 {
			linesErr = errors.Join(linesErr, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("lines[%d].expectedQty", i), fmt.Errorf("%d is not greater than 0", l.ExpectedQty)))
		}
	}
	if err := errors.Join(id.Validate(), supplierErr, linesErr); err != nil {
		return CreatePurchaseOrderCommand{}, err
	}

	cmd.id = id
	cmd.lines = append([]PurchaseOrderLineInput(nil), lines...)
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreatePurchaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreatePurchaseOrderCommandIsNotConstructed)
}

// ID returns the identity the purchase order will get.
func (c CreatePurchaseOrderCommand) ID() kernel.UUID {
	return c.id
}

// Supplier returns the vendor name.
func (c CreatePurchaseOrderCommand) Supplier() string {
	return c.supplier
}

// ExpectedDate returns the promised delivery date.
func (c CreatePurchaseOrderCommand) ExpectedDate() time.Time {
	return c.expectedDate
}

// Lines returns a copy of the expected lines.
func (c CreatePurchaseOrderCommand) Lines() []PurchaseOrderLineInput {
	return append([]PurchaseOrderLineInput(nil), c.lines...)
}
