package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/inventory"
)

// ErrStockItemAlreadyExists is returned when the SKU is already registered.
var ErrStockItemAlreadyExists = errors.New("stock item already exists")

// RegisterStockItemCommandHandler adds a new SKU to the ledger.
type RegisterStockItemCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewRegisterStockItemCommandHandler creates the handler.
func NewRegisterStockItemCommandHandler(uowFactory InventoryUoWFactory) RegisterStockItemCommandHandler {
	return RegisterStockItemCommandHandler{uowFactory: uowFactory}
}

// Handle returns ErrStockItemAlreadyExists for a known SKU.
func (h RegisterStockItemCommandHandler) Handle(ctx context.Context, cmd RegisterStockItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.InventoryRepository()
	_, err := repo.Get(ctx, cmd.Item().SKU())
	switch {
	case err == nil:
		return fmt.Errorf("%w: %s", ErrStockItemAlreadyExists, cmd.Item().SKU())
	case !errors.Is(err, inventory.ErrUnknownSKU):
		return err
	}

	if err = repo.Add(ctx, cmd.Item()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
