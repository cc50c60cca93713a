package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrReceiveGoodsCommandIsNotConstructed is returned by Validate for a zero value.
var ErrReceiveGoodsCommandIsNotConstructed = errors.New(
	"ReceiveGoodsCommand must be created via NewReceiveGoodsCommand constructor",
)

// ReceiveGoodsCommand books a goods receipt. PurchaseOrderNumber is optional.
type ReceiveGoodsCommand struct {
	sku                 string
	quantity            int
	batchNumber         string
	lotNumber           string
	expiry              *time.Time
	purchaseOrderNumber string

	guard guard.ConstructorGuard
}

// NewReceiveGoodsCommand requires a SKU and a positive quantity. Batch number,
// lot number, expiry and purchase order number are optional.
func NewReceiveGoodsCommand(
	sku string,
	quantity int,
	batchNumber, lotNumber string,
	expiry *time.Time,
	purchaseOrderNumber string,
) (ReceiveGoodsCommand, error) {
	cmd := ReceiveGoodsCommand{
		batchNumber:         strings.TrimSpace(batchNumber),
		lotNumber:           strings.TrimSpace(lotNumber),
		purchaseOrderNumber: strings.TrimSpace(purchaseOrderNumber),
		guard:               guard.NewConstructorGuard(),
	}
	if expiry != nil {
		e := *expiry
		cmd.expiry = &e
	}

	if err := errors.Join(
		cmd.setSKU(sku),
		cmd.setQuantity(quantity),
	); err != nil {
		return ReceiveGoodsCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReceiveGoodsCommand) Validate() error {
	return c.guard.Validate(ErrReceiveGoodsCommandIsNotConstructed)
}

// SKU returns the received SKU.
func (c ReceiveGoodsCommand) SKU() string {
	return c.sku
}

// Quantity returns the received amount.
func (c ReceiveGoodsCommand) Quantity() int {
	return c.quantity
}

// BatchNumber returns the supplier batch number, possibly empty.
func (c ReceiveGoodsCommand) BatchNumber() string {
	return c.batchNumber
}

// LotNumber returns the lot number, possibly empty.
func (c ReceiveGoodsCommand) LotNumber() string {
	return c.lotNumber
}

// Expiry returns the expiry date, or nil.
func (c ReceiveGoodsCommand) Expiry() *time.Time {
	return c.expiry
}

// PurchaseOrderNumber returns the purchase order to book against, possibly empty.
func (c ReceiveGoodsCommand) PurchaseOrderNumber() string {
	return c.purchaseOrderNumber
}

func (c *ReceiveGoodsCommand) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	c.sku = sku
	return nil
}

func (c *ReceiveGoodsCommand) setQuantity(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", qty))
	}
	c.quantity = qty
	return nil
}
