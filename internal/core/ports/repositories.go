package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/receiving"
	"fulfillment/internal/core/domain/model/warehouse"
)

// InventoryRepository stores the stock ledger. Get and GetForUpdate return an
// *inventory.UnknownSKUError for a missing SKU.
type InventoryRepository interface {
	// Add persists a new SKU together with its batches.
	// Adding a SKU that already exists is an error.
	Add(ctx context.Context, item *inventory.StockItem) error

	// Update persists quantities and batches of an existing SKU.
	// New batches are inserted and known ones have their compliance updated.
	Update(ctx context.Context, item *inventory.StockItem) error

	// Get retrieves a SKU without locking it.
	// Read paths and queries use it.
	Get(ctx context.Context, sku string) (*inventory.StockItem, error)

	// GetForUpdate reads the latest committed row and locks the SKU until the
	// unit of work commits or rolls back. Callers lock several SKUs in sorted order.
	GetForUpdate(ctx context.Context, sku string) (*inventory.StockItem, error)

	// List returns every row sorted by SKU.
	List(ctx context.Context) ([]*inventory.StockItem, error)
}

// OrderRepository defines the persistence contract for sales orders.
// Lines are stored with the order and never change after intake.
type OrderRepository interface {
	// Add persists a new order with its lines.
	// The order number must not be taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the status of an existing order and queues its
	// recorded events for publishing after commit.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its lines, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate reads the order and locks its row until the unit of work ends.
	// Status transitions read through it so that only one writer can move an order.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListByStatus returns orders in any of statuses, oldest first; no statuses means all orders.
	ListByStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error)
}

// TaskRepository stores putaway tasks, the pick state of order lines and packing sessions.
// Picking tasks themselves are derived and never stored.
type TaskRepository interface {
	// AddPutaway stores a pending putaway task.
	AddPutaway(ctx context.Context, task *warehouse.PutawayTask) error

	// GetPutaway returns a pending task or errs.ErrObjectNotFound.
	GetPutaway(ctx context.Context, id kernel.UUID) (*warehouse.PutawayTask, error)

	// DeletePutaway removes a completed task, or returns errs.ErrObjectNotFound.
	DeletePutaway(ctx context.Context, id kernel.UUID) error

	// ListPutaways returns pending tasks, oldest first.
	ListPutaways(ctx context.Context) ([]*warehouse.PutawayTask, error)

	// MarkPicked records a confirmed pick. Marking a line twice is a no-op.
	MarkPicked(ctx context.Context, ref warehouse.LineRef) error

	// PickState returns the picked lines of the given orders, or of every order when none are given.
	PickState(ctx context.Context, orderIDs ...kernel.UUID) (warehouse.PickState, error)

	// ClearPicks forgets the picks of a shipped order.
	ClearPicks(ctx context.Context, orderID kernel.UUID) error

	// GetPackingSession returns errs.ErrObjectNotFound when packing has not started.
	GetPackingSession(ctx context.Context, orderID kernel.UUID) (*warehouse.PackingSession, error)

	// SavePackingSession creates or replaces the session of its order.
	SavePackingSession(ctx context.Context, session *warehouse.PackingSession) error

	// DeletePackingSession removes the session of a shipped order.
	// Deleting a missing session is a no-op.
	DeletePackingSession(ctx context.Context, orderID kernel.UUID) error
}

// PurchaseOrderRepository defines the persistence contract for inbound
// purchase orders and their line progress.
type PurchaseOrderRepository interface {
	// Add persists a new purchase order. The number must not be taken.
	Add(ctx context.Context, po *receiving.PurchaseOrder) error

	// Update persists the received quantities and status.
	Update(ctx context.Context, po *receiving.PurchaseOrder) error

	// Get retrieves a purchase order by id, or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.UUID) (*receiving.PurchaseOrder, error)

	// GetByNumber retrieves a purchase order by number, or errs.ErrObjectNotFound.
	// Goods receipt uses it to match deliveries.
	GetByNumber(ctx context.Context, number string) (*receiving.PurchaseOrder, error)

	// List returns every purchase order sorted by number.
	List(ctx context.Context) ([]*receiving.PurchaseOrder, error)
}
