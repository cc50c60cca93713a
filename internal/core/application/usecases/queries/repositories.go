// Package queries holds read-only projections. Every handler reads inside one
// unit of work that is rolled back, so a projection reflects a single committed state.
package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	// Reader is the read side of a unit of work.
	Reader interface {
		// Begin opens the snapshot.
		Begin(ctx context.Context) error
		// Rollback closes it; queries never commit.
		Rollback(ctx context.Context) error
		InventoryRepository() ports.InventoryRepository
		OrderRepository() ports.OrderRepository
		TaskRepository() ports.TaskRepository
		PurchaseOrderRepository() ports.PurchaseOrderRepository
	}

	// ReaderFactory creates a Reader per query.
	ReaderFactory interface {
		Create() Reader
	}
)

// read opens a snapshot, runs fn and always rolls back.
func read[T any](ctx context.Context, factory ReaderFactory, fn func(Reader) (T, error)) (T, error) {
	var zero T
	r := factory.Create()
	if err := r.Begin(ctx); err != nil {
		return zero, err
	}

	defer func() {
		_ = r.Rollback(ctx)
	}()

	return fn(r)
}
