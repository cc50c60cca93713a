package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per command.
// Units of work are not reusable and not safe for concurrent use.
type UnitOfWorkFactory interface {
	// Create returns a unit of work that has not begun.
	Create() UnitOfWork
}

// UnitOfWork groups repository calls into one atomic commit. Status changes of
// orders updated through it are published after a successful Commit.
//
// Handlers follow one pattern:
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//	// repository calls
//	return uow.Commit(ctx)
type UnitOfWork interface {
	// Begin starts the transaction. Repositories may be used only after it.
	Begin(ctx context.Context) error

	// Commit makes every change visible, releases row locks and publishes
	// the collected events.
	Commit(ctx context.Context) error

	// Rollback discards uncommitted changes. It is a no-op after Commit, so
	// handlers can always defer it.
	Rollback(ctx context.Context) error

	// InventoryRepository returns the stock ledger bound to this transaction.
	InventoryRepository() InventoryRepository

	// OrderRepository returns the order store bound to this transaction.
	OrderRepository() OrderRepository

	// TaskRepository returns the task store bound to this transaction.
	TaskRepository() TaskRepository

	// PurchaseOrderRepository returns the purchase order store bound to this transaction.
	PurchaseOrderRepository() PurchaseOrderRepository
}
