package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ErrListPurchaseOrdersQueryIsNotConstructed is returned by Validate for a zero value.
var ErrListPurchaseOrdersQueryIsNotConstructed = errors.New(
	"ListPurchaseOrdersQuery must be created via NewListPurchaseOrdersQuery constructor",
)

// ListPurchaseOrdersQuery lists every purchase order.
type ListPurchaseOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListPurchaseOrdersQuery takes no parameters.
func NewListPurchaseOrdersQuery() ListPurchaseOrdersQuery {
	return ListPurchaseOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListPurchaseOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListPurchaseOrdersQueryIsNotConstructed)
}

// PurchaseOrderLineView is one expected SKU and its receipt progress.
type PurchaseOrderLineView struct {
	SKU         string
	ExpectedQty int
	ReceivedQty int
	Status      string
}

// PurchaseOrderView is the read model of a purchase order.
type PurchaseOrderView struct {
	ID           string
	Number       string
	Supplier     string
	ExpectedDate string
	Status       string
	Lines        []PurchaseOrderLineView
}
