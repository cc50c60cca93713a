package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// IssueInvoiceCommandHandler moves a Shipped order to Invoiced. Repeating it is a no-op.
type IssueInvoiceCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *Locks
}

// NewIssueInvoiceCommandHandler creates the handler.
func NewIssueInvoiceCommandHandler(uowFactory OrderUoWFactory, locks *Locks) IssueInvoiceCommandHandler {
	return IssueInvoiceCommandHandler{uowFactory: uowFactory, locks: locks}
}

// Handle returns *order.IllegalTransitionError for an order that is not yet
// Shipped and ErrAlreadyTransitioning while another caller holds the order.
func (h IssueInvoiceCommandHandler) Handle(ctx context.Context, cmd IssueInvoiceCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	unlock, ok := h.locks.Orders.TryLock(cmd.OrderID().String())
	if !ok {
		return ErrAlreadyTransitioning
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if o.Status() == order.Invoiced {
		return nil
	}

	if err = o.Invoice(); err != nil {
		return err
	}

	if err = repo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
