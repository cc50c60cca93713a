// Package commands contains business operations that modify engine state.
// Every handler validates its command, opens a unit of work, loads aggregates,
// applies domain behaviour and commits. Status events are published by the
// unit of work after a successful commit.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	PurchaseOrderRepoFactory interface {
		PurchaseOrderRepository() ports.PurchaseOrderRepository
	}

	// InventoryUoW is used by ledger-only operations (registration, release, batch review).
	InventoryUoW interface {
		TxManager
		InventoryRepoFactory
	}

	InventoryUoWFactory interface {
		Create() InventoryUoW
	}

	// OrderUoW is used by order-only transitions such as invoicing.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TaskUoW is used by putaway confirmation.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
	}

	TaskUoWFactory interface {
		Create() TaskUoW
	}

	PurchaseOrderUoW interface {
		TxManager
		PurchaseOrderRepoFactory
	}

	PurchaseOrderUoWFactory interface {
		Create() PurchaseOrderUoW
	}

	// UoW spans every repository. Used by operations that move an order and the
	// ledger together, or receive goods against a purchase order.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   item, err := uow.InventoryRepository().GetForUpdate(ctx, sku)
	//   // ... mutate and update
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		InventoryRepoFactory
		OrderRepoFactory
		TaskRepoFactory
		PurchaseOrderRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// IDGenerator issues human readable business numbers.
type IDGenerator interface {
	OrderNumber() string
	BatchID() string
	PurchaseOrderNumber() string
}
