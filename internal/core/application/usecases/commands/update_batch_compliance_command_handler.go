package commands

import (
	"context"
)

// UpdateBatchComplianceCommandHandler records the review outcome of one batch.
// Stock quantities are not touched.
type UpdateBatchComplianceCommandHandler struct {
	uowFactory InventoryUoWFactory
}

// NewUpdateBatchComplianceCommandHandler creates the handler.
func NewUpdateBatchComplianceCommandHandler(uowFactory InventoryUoWFactory) UpdateBatchComplianceCommandHandler {
	return UpdateBatchComplianceCommandHandler{uowFactory: uowFactory}
}

// Handle returns *inventory.UnknownSKUError for an unknown SKU and
// errs.ObjectNotFoundError for an unknown batch.
func (h UpdateBatchComplianceCommandHandler) Handle(ctx context.Context, cmd UpdateBatchComplianceCommand) error {
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
	item, err := repo.GetForUpdate(ctx, cmd.SKU())
	if err != nil {
		return err
	}

	if err = item.UpdateBatchCompliance(cmd.BatchID(), cmd.Status()); err != nil {
		return err
	}

	if err = repo.Update(ctx, item); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
