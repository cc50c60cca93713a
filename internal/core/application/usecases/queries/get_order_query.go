package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetOrderQueryIsNotConstructed is returned by Validate for a zero value.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery returns one order with its pick and pack progress.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery rejects the nil order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the order to read.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// OrderLineView is one order line with its pick and packing status.
type OrderLineView struct {
	Index     int
	TaskID    string
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
	Picked    bool
	Verified  bool
}

// OrderView is the read model of an order. Enums are rendered as strings and
// CreatedAt as RFC 3339. PackEligible is true once the order is in
// WarehousePick and every line is picked.
type OrderView struct {
	ID              kernel.UUID
	Number          string
	Customer        string
	Priority        string
	Status          string
	ShippingAddress string
	CreatedAt       string
	Total           decimal.Decimal
	Lines           []OrderLineView
	PackEligible    bool
}
