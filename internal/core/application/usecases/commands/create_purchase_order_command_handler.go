package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/receiving"
)

// CreatePurchaseOrderCommandHandler registers an inbound purchase order and returns its number.
type CreatePurchaseOrderCommandHandler struct {
	uowFactory PurchaseOrderUoWFactory
	ids        IDGenerator
}

// NewCreatePurchaseOrderCommandHandler creates the handler. ids numbers new purchase orders.
func NewCreatePurchaseOrderCommandHandler(uowFactory PurchaseOrderUoWFactory, ids IDGenerator) CreatePurchaseOrderCommandHandler {
	return CreatePurchaseOrderCommandHandler{uowFactory: uowFactory, ids: ids}
}

// Handle stores the purchase order as Pending and returns its number.
func (h CreatePurchaseOrderCommandHandler) Handle(ctx context.Context, cmd CreatePurchaseOrderCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	lines := make([]receiving.Line, 0, len(cmd.Lines()))
	for _, l := range cmd.Lines() {
		lines = append(lines, receiving.Line{SKU: strings.TrimSpace(l.SKU), ExpectedQty: l.ExpectedQty})
	}

	po, err := receiving.NewPurchaseOrder(cmd.ID(), h.ids.PurchaseOrderNumber(), cmd.Supplier(), cmd.ExpectedDate(), lines)
	if err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.PurchaseOrderRepository().Add(ctx, po); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	return po.Number(), nil
}
