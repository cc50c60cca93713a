package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ErrGetPackingReadyOrdersQueryIsNotConstructed is returned by Validate for a zero value.
var ErrGetPackingReadyOrdersQueryIsNotConstructed = errors.New(
	"GetPackingReadyOrdersQuery must be created via NewGetPackingReadyOrdersQuery constructor",
)

// GetPackingReadyOrdersQuery lists orders in WarehousePick whose lines are all picked.
type GetPackingReadyOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPackingReadyOrdersQuery takes no parameters.
func NewGetPackingReadyOrdersQuery() GetPackingReadyOrdersQuery {
	return GetPackingReadyOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPackingReadyOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPackingReadyOrdersQueryIsNotConstructed)
}

// PackingOrderView is one order at the packing station. Complete is true
// when MissingSKUs is empty and FinalizeShipment would succeed.
type PackingOrderView struct {
	OrderID      string
	OrderNumber  string
	Customer     string
	Priority     string
	SKUs         []string
	VerifiedSKUs []string
	MissingSKUs  []string
	Complete     bool
}
