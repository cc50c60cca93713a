// Package services holds the domain logic that spans aggregates:
//
//   - ValidationPipeline runs InventoryCheck, CreditCheck and ComplianceCheck in
//     order, stopping at the first check that does not pass, with a hard timeout
//     per check.
//   - StockAllocator reserves an order's lines all-or-nothing and consumes the
//     reservation at shipment.
//   - PickTaskGenerator derives picking tasks from orders and pick state.
package services
