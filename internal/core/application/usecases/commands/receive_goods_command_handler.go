package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"
)

// ReceiveGoodsResult identifies the new batch and its putaway task.
type ReceiveGoodsResult struct {
	BatchID       string
	PutawayTaskID kernel.UUID
}

// ReceiveGoodsCommandHandler adds received stock to the ledger, appends a
// PendingReview batch, books the receipt against the purchase order when one
// is given and emits exactly one putaway task to the SKU's home location.
type ReceiveGoodsCommandHandler struct {
	uowFactory UoWFactory
	ids        IDGenerator
}

// NewReceiveGoodsCommandHandler creates the handler. ids generates batch ids.
func NewReceiveGoodsCommandHandler(uowFactory UoWFactory, ids IDGenerator) ReceiveGoodsCommandHandler {
	return ReceiveGoodsCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

// Handle returns *inventory.UnknownSKUError for an unregistered SKU and
// errs.ObjectNotFoundError for an unknown purchase order number.
// Nothing is booked when either lookup fails.
func (h ReceiveGoodsCommandHandler) Handle(ctx context.Context, cmd ReceiveGoodsCommand) (ReceiveGoodsResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReceiveGoodsResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReceiveGoodsResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	item, err := uow.InventoryRepository().GetForUpdate(ctx, cmd.SKU())
	if err != nil {
		return ReceiveGoodsResult{}, err
	}

	now := time.Now()
	batchID := h.ids.BatchID()
	batch, err := inventory.NewBatch(batchID, cmd.BatchNumber(), cmd.LotNumber(), cmd.Expiry(), cmd.Quantity(), now)
	if err != nil {
		return ReceiveGoodsResult{}, err
	}

	if err = item.Receive(cmd.Quantity(), batch); err != nil {
		return ReceiveGoodsResult{}, err
	}

	receiptRef := batchID
	if number := cmd.PurchaseOrderNumber(); number != "" {
		poRepo := uow.PurchaseOrderRepository()
		po, err := poRepo.GetByNumber(ctx, number)
		if err != nil {
			return ReceiveGoodsResult{}, err
		}
		if err = po.Receive(cmd.SKU(), cmd.Quantity()); err != nil {
			return ReceiveGoodsResult{}, err
		}
		if err = poRepo.Update(ctx, po); err != nil {
			return ReceiveGoodsResult{}, err
		}
		receiptRef = number
	}

	task, err := warehouse.NewPutawayTask(kernel.NewUUID(), receiptRef, item.SKU(), cmd.Quantity(), batchID,
		item.Location(), now)
	if err != nil {
		return ReceiveGoodsResult{}, err
	}

	if err = uow.InventoryRepository().Update(ctx, item); err != nil {
		return ReceiveGoodsResult{}, err
	}

	if err = uow.TaskRepository().AddPutaway(ctx, task); err != nil {
		return ReceiveGoodsResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReceiveGoodsResult{}, err
	}

	return ReceiveGoodsResult{BatchID: batchID, PutawayTaskID: task.ID()}, nil
}
