package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Line is one SKU on a sales order. Lines are immutable values.
type Line struct {
	// sku references a StockItem; it need not exist at intake.
	sku string
	// quantity is the ordered amount, always positive.
	quantity int
	// unitPrice is the price agreed at intake, never negative.
	unitPrice decimal.Decimal

	isConstructed bool
}

// NewLine builds a validated order line.
//
// Returns:
//   - the Line
//   - the joined validation errors for an empty sku, a non-positive quantity
//     or a negative price
func NewLine(sku string, quantity int, unitPrice decimal.Decimal) (Line, error) {
	line := Line{isConstructed: true}

	if err := errors.Join(
		line.setSKU(sku),
		line.setQuantity(quantity),
		line.setUnitPrice(unitPrice),
	); err != nil {
		return Line{}, err
	}
	return line, nil
}

// Validate fails for a zero Line.
func (l Line) Validate() error {
	if !l.isConstructed {
		return ErrLineIsNotConstructed
	}
	return nil
}

// SKU returns the ordered SKU.
func (l Line) SKU() string {
	return l.sku
}

// Quantity returns the ordered amount.
func (l Line) Quantity() int {
	return l.quantity
}

// UnitPrice returns the agreed unit price.
func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

// Total is quantity * unit price.
func (l Line) Total() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// setSKU trims and sets the ordered SKU.
// This is a private method used only during construction.
func (l *Line) setSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	l.sku = sku
	return nil
}

// setQuantity sets the ordered amount, which must be positive.
// This is a private method used only during construction.
func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	l.quantity = quantity
	return nil
}

// setUnitPrice sets the agreed price, which must not be negative.
// This is a private method used only during construction.
func (l *Line) setUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%s is negative", price))
	}
	l.unitPrice = price
	return nil
}
