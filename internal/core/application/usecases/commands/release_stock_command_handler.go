package commands

import (
	"context"
)

// ReleaseStockCommandHandler lowers allocated, floored at zero, and returns
// how many units were actually released.
type ReleaseStockCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewReleaseStockCommandHandler creates the handler.
func NewReleaseStockCommandHandler(uowFactory InventoryUoWFactory) ReleaseStockCommandHandler {
	return ReleaseStockCommandHandler{uowFactory: uowFactory}
}

// Handle locks the SKU row and returns the number of units released.
func (h ReleaseStockCommandHandler) Handle(ctx context.Context, cmd ReleaseStockCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()
	item, err := repo.GetForUpdate(ctx, cmd.SKU())
	if err != nil {
		return 0, err
	}

	released, err := item.Release(cmd.Quantity())
	if err != nil {
		return 0, err
	}

	if err = repo.Update(ctx, item); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return released, nil
}
