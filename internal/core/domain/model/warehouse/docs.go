// Package warehouse models the floor work derived from orders and receipts:
// picking tasks and their grouping strategies, putaway tasks, packing sessions,
// and the two gates that guard dispatch (scan match on pick, full SKU coverage
// on pack).
//
// Picking tasks are never stored. They are rebuilt from orders in WarehousePick
// plus a PickState keyed by (order id, line index), so they cannot go stale.
package warehouse
