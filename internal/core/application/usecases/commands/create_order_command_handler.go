package commands

import (
	"context"
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
)

// CreateOrderResult identifies the new order.
type CreateOrderResult struct {
	OrderID string
	Number  string
}

// CreateOrderCommandHandler registers a Confirmed order. SKUs are not checked
// against the ledger here; unknown SKUs are reported by validation.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	ids        IDGenerator
}

// NewCreateOrderCommandHandler creates the handler. ids numbers new orders.
func NewCreateOrderCommandHandler(uowFactory UoWFactory, ids IDGenerator) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		ids:        ids,
	}
}

// Handle stores the order and returns its id and number.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines := make([]order.Line, 0, len(cmd.Lines()))
	for _, in := range cmd.Lines() {
		price := in.UnitPrice
		if price.IsZero() {
			item, err := uow.InventoryRepository().Get(ctx, strings.TrimSpace(in.SKU))
			switch {
			case errors.Is(err, inventory.ErrUnknownSKU):
			case err != nil:
				return CreateOrderResult{}, err
			default:
				price = item.UnitPrice()
			}
		}

		line, err := order.NewLine(in.SKU, in.Quantity, price)
		if err != nil {
			return CreateOrderResult{}, err
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), h.ids.OrderNumber(), cmd.Customer(), cmd.Priority(),
		cmd.ShippingAddress(), lines, time.Now())
	if err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return CreateOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CreateOrderResult{}, err
	}

	return CreateOrderResult{OrderID: o.ID().String(), Number: o.Number()}, nil
}
