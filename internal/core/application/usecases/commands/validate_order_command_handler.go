package commands

import (
	"context"
	"errors"
	"sort"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// ValidateOrderResult is the pipeline report and the order status afterwards.
// AlreadyValidated marks a duplicate request for an order already in picking.
type ValidateOrderResult struct {
	Report           validation.Report
	Status           order.Status
	AlreadyValidated bool
}

// ValidateOrderCommandHandler drives Confirmed -> WarehousePick.
//
// The pipeline runs against a snapshot with no locks held, so slow providers
// never block the ledger. Reservation then happens in its own transaction under
// per-SKU row locks taken in SKU order. A validation failure leaves the order
// Confirmed and is returned as *validation.ValidationFailedError or
// *validation.IndeterminateError.
//
// Example:
//
//	res, err := handler.Handle(ctx, cmd)
//	var failed *validation.ValidationFailedError
//	switch {
//	case errors.As(err, &failed):
//	    show(failed.Reasons)
//	case errors.Is(err, inventory.ErrReservationConflict), errors.Is(err, ErrAlreadyTransitioning):
//	    retry()
//	}
type ValidateOrderCommandHandler struct {
	uowFactory UoWFactory
	pipeline   *services.ValidationPipeline
	allocator  services.StockAllocator
	locks      *Locks
	metrics    ports.Metrics
}

// NewValidateOrderCommandHandler creates the handler. The pipeline may be shared
// between handlers; locks must be shared with the other order handlers.
func NewValidateOrderCommandHandler(
	uowFactory UoWFactory,
	pipeline *services.ValidationPipeline,
	locks *Locks,
	metrics ports.Metrics,
) ValidateOrderCommandHandler {
	return ValidateOrderCommandHandler{
		uowFactory: uowFactory,
		pipeline:   pipeline,
		allocator:  services.NewStockAllocator(),
		locks:      locks,
		metrics:    metrics,
	}
}

// Handle validates the order and reserves its stock.
//
// Returns:
//   - the report and WarehousePick on success
//   - AlreadyValidated with a nil error for an order already in WarehousePick
//   - *validation.ValidationFailedError or *validation.IndeterminateError
//   - *inventory.ReservationConflictError when stock moved after the checks
//   - ErrAlreadyTransitioning if another caller holds the order
func (h ValidateOrderCommandHandler) Handle(ctx context.Context, cmd ValidateOrderCommand) (ValidateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ValidateOrderResult{}, err
	}

	unlock, ok := h.locks.Orders.TryLock(cmd.OrderID().String())
	if !ok {
		return ValidateOrderResult{}, ErrAlreadyTransitioning
	}
	defer unlock()

	o, stock, err := h.snapshot(ctx, cmd)
	if err != nil {
		return ValidateOrderResult{}, err
	}

	switch o.Status() {
	case order.WarehousePick:
		return ValidateOrderResult{Status: o.Status(), AlreadyValidated: true}, nil
	case order.Confirmed, order.CreditCheck, order.ComplianceScreening:
	default:
		return ValidateOrderResult{Status: o.Status()},
			&order.IllegalTransitionError{From: o.Status(), To: order.WarehousePick}
	}

	report := h.pipeline.Run(ctx, services.CheckInput{Order: o, Stock: stock})
	if err = report.Err(); err != nil {
		return ValidateOrderResult{Report: report, Status: o.Status()}, err
	}

	status, err := h.reserve(ctx, cmd)
	if err != nil {
		if errors.Is(err, inventory.ErrReservationConflict) {
			h.metrics.ReservationFailed("conflict")
		}
		return ValidateOrderResult{Report: report, Status: o.Status()}, err
	}

	return ValidateOrderResult{Report: report, Status: status}, nil
}

// snapshot reads the order and the ledger rows it references. Unknown SKUs are
// left out for the inventory check to report.
func (h ValidateOrderCommandHandler) snapshot(
	ctx context.Context,
	cmd ValidateOrderCommand,
) (*order.Order, map[string]*inventory.StockItem, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, nil, err
	}

	stock := make(map[string]*inventory.StockItem, len(o.Lines()))
	for _, sku := range o.LineSKUs() {
		item, err := uow.InventoryRepository().Get(ctx, sku)
		if errors.Is(err, inventory.ErrUnknownSKU) {
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		stock[sku] = item
	}
	return o, stock, nil
}

// reserve locks the order, then every SKU in sorted order, and allocates
// all lines in one transaction.
func (h ValidateOrderCommandHandler) reserve(ctx context.Context, cmd ValidateOrderCommand) (order.Status, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	inventoryRepo := uow.InventoryRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return order.Unknown, err
	}
	if o.Status() >= order.WarehousePick {
		return o.Status(), ErrAlreadyTransitioning
	}

	skus := o.LineSKUs()
	sort.Strings(skus)
	locked := make(map[string]*inventory.StockItem, len(skus))
	for _, sku := range skus {
		item, err := inventoryRepo.GetForUpdate(ctx, sku)
		if errors.Is(err, inventory.ErrUnknownSKU) {
			return order.Unknown, &inventory.ReservationConflictError{SKU: sku, Cause: err}
		}
		if err != nil {
			return order.Unknown, err
		}
		locked[sku] = item
	}

	if err = h.allocator.Allocate(o, locked); err != nil {
		return order.Unknown, err
	}

	if err = o.StartPicking(); err != nil {
		return order.Unknown, err
	}

	for _, sku := range skus {
		if err = inventoryRepo.Update(ctx, locked[sku]); err != nil {
			return order.Unknown, err
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return order.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Unknown, err
	}

	return o.Status(), nil
}
