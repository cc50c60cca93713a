package commands

import (
	"context"
)

// ConfirmPutawayCommandHandler completes a putaway task and removes it.
type ConfirmPutawayCommandHandler struct {
	uowFactory TaskUoWFactory
}

// NewConfirmPutawayCommandHandler creates the handler.
func NewConfirmPutawayCommandHandler(uowFactory TaskUoWFactory) ConfirmPutawayCommandHandler {
	return ConfirmPutawayCommandHandler{uowFactory: uowFactory}
}

// Handle returns errs.ObjectNotFoundError for an unknown or already completed task.
func (h ConfirmPutawayCommandHandler) Handle(ctx context.Context, cmd ConfirmPutawayCommand) error {
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

	repo := uow.TaskRepository()
	task, err := repo.GetPutaway(ctx, cmd.TaskID())
	if err != nil {
		return err
	}

	if err = task.Complete(); err != nil {
		return err
	}

	if err = repo.DeletePutaway(ctx, task.ID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
