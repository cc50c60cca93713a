// Package inventory is the stock ledger: one StockItem aggregate per SKU with
// on-hand and allocated quantities and the batches received against it.
//
// Available stock is max(0, onHand-allocated). Reserve fails rather than
// over-allocating; Release floors at zero; Receive appends a PendingReview
// batch. A stored allocated > onHand is never clamped: CheckInvariant reports
// it as an InvariantViolationError for an operator to resolve.
//
// Batch quantities record provenance for part of the stock and are not
// expected to sum to onHand.
package inventory
