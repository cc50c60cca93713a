// Package order holds the sales order aggregate and its forward-only status machine.
//
// Statuses form a strict total order:
//
//	Confirmed < CreditCheck < ComplianceScreening < WarehousePick < Shipped < Invoiced
//
// Every transition method moves strictly forward along one edge and returns an
// IllegalTransitionError otherwise. A failed validation leaves the order
// Confirmed; there is no terminal failure state.
package order
