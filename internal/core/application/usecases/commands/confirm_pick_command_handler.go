package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ConfirmPickResult is the task after confirmation. AlreadyPicked means an
// earlier confirmation won and nothing changed.
type ConfirmPickResult struct {
	Task          warehouse.PickingTask
	AlreadyPicked bool
	PackEligible  bool
}

// ConfirmPickCommandHandler is the pick gate. The task is marked Picked only
// when both scanned values equal the task's location and SKU; a mismatch
// returns *warehouse.MismatchError and changes nothing.
type ConfirmPickCommandHandler struct {
	uowFactory UoWFactory
	generator  services.PickTaskGenerator
	locks      *Locks
	metrics    ports.Metrics
}

// NewConfirmPickCommandHandler creates the handler. Every scan, matched or
// not, is reported to metrics.
func NewConfirmPickCommandHandler(uowFactory UoWFactory, locks *Locks, metrics ports.Metrics) ConfirmPickCommandHandler {
	return ConfirmPickCommandHandler{
		uowFactory: uowFactory,
		generator:  services.NewPickTaskGenerator(),
		locks:      locks,
		metrics:    metrics,
	}
}

// Handle verifies the scan and marks the line picked.
//
// Returns:
//   - the task as Picked, with AlreadyPicked set for a repeated confirmation
//   - errs.ObjectNotFoundError for an unknown task or an order not in WarehousePick
//   - *warehouse.MismatchError when the scan does not match
func (h ConfirmPickCommandHandler) Handle(ctx context.Context, cmd ConfirmPickCommand) (ConfirmPickResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPickResult{}, err
	}

	taskID := cmd.Ref().TaskID()
	unlock, err := h.locks.Tasks.Lock(ctx, taskID)
	if err != nil {
		return ConfirmPickResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ConfirmPickResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Ref().OrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ConfirmPickResult{}, errs.NewObjectNotFoundErrorWithCause("taskId", taskID, err)
	}
	if err != nil {
		return ConfirmPickResult{}, err
	}
	if o.Status() != order.WarehousePick {
		return ConfirmPickResult{}, errs.NewObjectNotFoundErrorWithCause("taskId", taskID,
			&order.IllegalTransitionError{From: o.Status(), To: order.WarehousePick})
	}

	line, err := o.Line(cmd.Ref().LineIndex)
	if err != nil {
		return ConfirmPickResult{}, errs.NewObjectNotFoundErrorWithCause("taskId", taskID, err)
	}

	locations, err := locationsOf(ctx, uow.InventoryRepository(), line.SKU())
	if err != nil {
		return ConfirmPickResult{}, err
	}

	taskRepo := uow.TaskRepository()
	picks, err := taskRepo.PickState(ctx, o.ID())
	if err != nil {
		return ConfirmPickResult{}, err
	}

	task, err := h.generator.TaskFor(o, cmd.Ref().LineIndex, picks, locations)
	if err != nil {
		return ConfirmPickResult{}, err
	}
	if task.Status() == warehouse.Picked {
		return ConfirmPickResult{Task: task, AlreadyPicked: true, PackEligible: warehouse.IsPackEligible(o, picks)}, nil
	}

	if err = task.VerifyScan(cmd.ScannedLocation(), cmd.ScannedSKU()); err != nil {
		h.metrics.PickConfirmed(false)
		return ConfirmPickResult{Task: task}, err
	}

	if err = taskRepo.MarkPicked(ctx, task.Ref()); err != nil {
		return ConfirmPickResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ConfirmPickResult{}, err
	}
	h.metrics.PickConfirmed(true)

	picked := warehouse.NewPickingTask(o, task.LineIndex(), line, task.Location(), warehouse.Picked)
	after := warehouse.NewPickState(append(picks.Refs(), task.Ref())...)
	return ConfirmPickResult{Task: picked, PackEligible: warehouse.IsPackEligible(o, after)}, nil
}

// locationsOf maps each known SKU to its storage location. Unknown SKUs are left out.
func locationsOf(ctx context.Context, repo ports.InventoryRepository, skus ...string) (map[string]kernel.Location, error) {
	locations := make(map[string]kernel.Location, len(skus))
	for _, sku := range skus {
		item, err := repo.Get(ctx, sku)
		if errors.Is(err, inventory.ErrUnknownSKU) {
			continue
		}
		if err != nil {
			return nil, err
		}
		locations[sku] = item.Location()
	}
	return locations, nil
}
