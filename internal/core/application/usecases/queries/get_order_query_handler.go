package queries

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order with its pick state.
type GetOrderQueryHandler struct {
	readers ReaderFactory
}

// NewGetOrderQueryHandler creates the handler.
func NewGetOrderQueryHandler(readers ReaderFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

// Handle returns errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	return read(ctx, h.readers, func(r Reader) (OrderView, error) {
		o, err := r.OrderRepository().Get(ctx, query.OrderID())
		if err != nil {
			return OrderView{}, err
		}

		picks, err := r.TaskRepository().PickState(ctx, o.ID())
		if err != nil {
			return OrderView{}, err
		}

		session, err := r.TaskRepository().GetPackingSession(ctx, o.ID())
		if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
			return OrderView{}, err
		}

		return orderView(o, picks, session), nil
	})
}

func orderView(o *order.Order, picks warehouse.PickState, session *warehouse.PackingSession) OrderView {
	lines := make([]OrderLineView, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		ref := warehouse.LineRef{OrderID: o.ID(), LineIndex: i}
		lines = append(lines, OrderLineView{
			Index:     i,
			TaskID:    ref.TaskID(),
			SKU:       l.SKU(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Total:     l.Total(),
			Picked:    picks.IsPicked(ref),
			Verified:  session.IsVerified(l.SKU()),
		})
	}

	return OrderView{
		ID:              o.ID(),
		Number:          o.Number(),
		Customer:        o.Customer(),
		Priority:        o.Priority().String(),
		Status:          o.Status().String(),
		ShippingAddress: o.ShippingAddress(),
		CreatedAt:       o.CreatedAt().Format(time.RFC3339),
		Total:           o.Total(),
		Lines:           lines,
		PackEligible:    warehouse.IsPackEligible(o, picks),
	}
}
