package commands

import (
	"context"
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// FinalizeShipmentCommandHandler is the pack gate and WarehousePick -> Shipped.
//
// It succeeds only when every line is picked and the packing session verified
// every line SKU; otherwise it returns *warehouse.IncompletePackingError and the
// order stays in WarehousePick. On success the reservation is consumed from the
// ledger, the session and pick marks are discarded. Finalizing an order that is
// already Shipped or Invoiced is a no-op, the same way a repeated invoice is.
type FinalizeShipmentCommandHandler struct {
	uowFactory UoWFactory
	allocator  services.StockAllocator
	locks      *Locks
	metrics    ports.Metrics
}

// NewFinalizeShipmentCommandHandler creates the handler. locks must be shared
// with the packing and validation handlers of the same process.
func NewFinalizeShipmentCommandHandler(uowFactory UoWFactory, locks *Locks, metrics ports.Metrics) FinalizeShipmentCommandHandler {
	return FinalizeShipmentCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewStockAllocator(),
		locks:      locks,
		metrics:    metrics,
	}
}

// Handle ships the order.
//
// Returns:
//   - nil on success and for an order already Shipped or Invoiced
//   - ErrAlreadyTransitioning if another caller holds the order
//   - *warehouse.IncompletePackingError while the gate is not satisfied
//   - *order.IllegalTransitionError for an order that never reached picking
func (h FinalizeShipmentCommandHandler) Handle(ctx context.Context, cmd FinalizeShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	key := cmd.OrderID().String()
	unlockOrder, ok := h.locks.Orders.TryLock(key)
	if !ok {
		return ErrAlreadyTransitioning
	}
	defer unlockOrder()

	unlockPacking, err := h.locks.Packing.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlockPacking()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	taskRepo := uow.TaskRepository()
	inventoryRepo := uow.InventoryRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	switch o.Status() {
	case order.WarehousePick:
	case order.Shipped, order.Invoiced:
		return nil
	default:
		return &order.IllegalTransitionError{From: o.Status(), To: order.Shipped}
	}

	picks, err := taskRepo.PickState(ctx, o.ID())
	if err != nil {
		return err
	}

	session, err := taskRepo.GetPackingSession(ctx, o.ID())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = warehouse.CheckPackingComplete(o, picks, session); err != nil {
		return err
	}

	skus := o.LineSKUs()
	sort.Strings(skus)
	locked := make(map[string]*inventory.StockItem, len(skus))
	for _, sku := range skus {
		item, err := inventoryRepo.GetForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		locked[sku] = item
	}

	if err = h.allocator.Consume(o, locked); err != nil {
		return err
	}

	if err = o.Ship(); err != nil {
		return err
	}

	for _, sku := range skus {
		if err = inventoryRepo.Update(ctx, locked[sku]); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = taskRepo.DeletePackingSession(ctx, o.ID()); err != nil {
		return err
	}

	if err = taskRepo.ClearPicks(ctx, o.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.metrics.OrderShipped()
	return nil
}
