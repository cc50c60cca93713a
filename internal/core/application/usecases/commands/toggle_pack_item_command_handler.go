package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"
)

// ErrNotPackEligible is returned when packing is attempted before every line is picked.
var ErrNotPackEligible = errors.New("order is not ready for packing")

// TogglePackItemResult is the new mark of the SKU and the verified set after the toggle.
type TogglePackItemResult struct {
	Verified    bool
	MissingSKUs []string
}

// TogglePackItemCommandHandler opens the packing session on first use and
// flips one SKU. Edits of the same order are serialized.
type TogglePackItemCommandHandler struct {
	uowFactory UoWFactory
	locks      *Locks
}

// NewTogglePackItemCommandHandler creates the handler.
func NewTogglePackItemCommandHandler(uowFactory UoWFactory, locks *Locks) TogglePackItemCommandHandler {
	return TogglePackItemCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle returns ErrNotPackEligible before every line is picked and an
// invalid-value error for a SKU that is not on the order.
func (h TogglePackItemCommandHandler) Handle(ctx context.Context, cmd TogglePackItemCommand) (TogglePackItemResult, error) {
	if err := cmd.Validate(); err != nil {
		return TogglePackItemResult{}, err
	}

	unlock, err := h.locks.Packing.Lock(ctx, cmd.OrderID().String())
	if err != nil {
		return TogglePackItemResult{}, err
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return TogglePackItemResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return TogglePackItemResult{}, err
	}

	taskRepo := uow.TaskRepository()
	picks, err := taskRepo.PickState(ctx, o.ID())
	if err != nil {
		return TogglePackItemResult{}, err
	}
	if !warehouse.IsPackEligible(o, picks) {
		return TogglePackItemResult{}, fmt.Errorf("%w: %s", ErrNotPackEligible, o.Number())
	}
	if !o.HasSKU(cmd.SKU()) {
		return TogglePackItemResult{}, errs.NewValueIsInvalidErrorWithCause("sku",
			fmt.Errorf("%s is not on order %s", cmd.SKU(), o.Number()))
	}

	session, err := taskRepo.GetPackingSession(ctx, o.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		session, err = warehouse.NewPackingSession(o.ID())
	}
	if err != nil {
		return TogglePackItemResult{}, err
	}

	verified, err := session.Toggle(cmd.SKU())
	if err != nil {
		return TogglePackItemResult{}, err
	}

	if err = taskRepo.SavePackingSession(ctx, session); err != nil {
		return TogglePackItemResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TogglePackItemResult{}, err
	}

	return TogglePackItemResult{Verified: verified, MissingSKUs: session.MissingSKUs(o.LineSKUs())}, nil
}
