package queries

import (
	"context"
)

// ListOrdersQueryHandler reads orders with their pick state.
type ListOrdersQueryHandler struct {
	readers ReaderFactory
}

// NewListOrdersQueryHandler creates the handler.
func NewListOrdersQueryHandler(readers ReaderFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readers: readers}
}

// Handle returns the matching orders oldest first.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.readers, func(r Reader) ([]OrderView, error) {
		orders, err := r.OrderRepository().ListByStatus(ctx, query.Statuses()...)
		if err != nil {
			return nil, err
		}

		picks, err := r.TaskRepository().PickState(ctx)
		if err != nil {
			return nil, err
		}

		views := make([]OrderView, 0, len(orders))
		for _, o := range orders {
			views = append(views, orderView(o, picks, nil))
		}
		return views, nil
	})
}
