package memory

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/keylock"
)

// trackedAggregate is an aggregate written in the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// eventSource is implemented by aggregates that record events.
type eventSource interface {
	PullEvents() []order.StatusChanged
}

// UnitOfWork stages writes against a snapshot. Without Begin every call reads
// the latest committed state and every write commits on its own.
type UnitOfWork struct {
	store *Store

	active  bool
	view    *state
	ops     []op
	locked  map[string]keylock.Unlock
	tracked []trackedAggregate
}

// newUnitOfWork returns an inactive unit of work.
func newUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Begin takes a private copy of the committed state. Calling it again while
// active is a no-op.
func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.active {
		return nil
	}
	uow.active = true
	uow.view = uow.store.snapshot().clone()
	uow.locked = make(map[string]keylock.Unlock)
	return nil
}

// Commit applies every staged write atomically, releases row locks and then
// publishes the status changes of tracked orders.
func (uow *UnitOfWork) Commit(ctx context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}

	err := uow.store.apply(uow.ops)
	tracked := uow.tracked
	uow.end()
	if err != nil {
		return err
	}

	uow.publish(ctx, tracked)
	return nil
}

// Rollback discards staged writes and releases row locks. It returns
// ErrNoTransaction after Commit, which deferred calls ignore.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.end()
	return nil
}

// InventoryRepository returns the ledger view of this unit of work.
func (uow *UnitOfWork) InventoryRepository() ports.InventoryRepository {
	return &inventoryRepository{uow: uow}
}

// OrderRepository returns the order view of this unit of work. Written
// orders are tracked for publishing.
func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &orderRepository{uow: uow, tracker: uow}
}

// TaskRepository returns the task view of this unit of work.
func (uow *UnitOfWork) TaskRepository() ports.TaskRepository {
	return &taskRepository{uow: uow}
}

// PurchaseOrderRepository returns the purchase order view of this unit of work.
func (uow *UnitOfWork) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	return &purchaseOrderRepository{uow: uow}
}

// TrackAggregate registers an aggregate written in this unit of work. Only
// written aggregates are tracked, so their events reach the publisher only
// after a successful commit.
func (uow *UnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.tracked = append(uow.tracked, trackedAggregate{ID: id, Aggregate: aggregate})
}

// end releases every row lock and resets the unit of work.
func (uow *UnitOfWork) end() {
	for _, unlock := range uow.locked {
		unlock()
	}
	uow.active = false
	uow.view = nil
	uow.ops = nil
	uow.locked = nil
	uow.tracked = nil
}

// publish drains the events of tracked aggregates. The caller's cancellation
// must not drop events of a committed transaction.
func (uow *UnitOfWork) publish(ctx context.Context, tracked []trackedAggregate) {
	if uow.store.publisher == nil {
		return
	}
	var events []order.StatusChanged
	for _, t := range tracked {
		if src, ok := t.Aggregate.(eventSource); ok {
			events = append(events, src.PullEvents()...)
		}
	}
	if len(events) > 0 {
		uow.store.publisher.Publish(context.WithoutCancel(ctx), events...)
	}
}

// read returns the state visible to this unit of work.
func (uow *UnitOfWork) read() *state {
	if uow.active {
		return uow.view
	}
	return uow.store.snapshot()
}

// write stages o, or commits it at once outside a transaction.
func (uow *UnitOfWork) write(o op) error {
	if !uow.active {
		return uow.store.apply([]op{o})
	}
	if err := o(uow.view); err != nil {
		return err
	}
	uow.ops = append(uow.ops, o)
	return nil
}

// lockRow locks key for the rest of the transaction and refreshes the row from
// the latest committed state through refresh. It is a no-op outside a
// transaction or when the row is already locked.
func (uow *UnitOfWork) lockRow(ctx context.Context, key string, refresh func(latest, view *state)) error {
	if !uow.active {
		return nil
	}
	if _, ok := uow.locked[key]; ok {
		return nil
	}
	unlock, err := uow.store.rows.Lock(ctx, key)
	if err != nil {
		return err
	}
	uow.locked[key] = unlock
	refresh(uow.store.snapshot(), uow.view)
	return nil
}
