package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"
)

// GetPackingReadyOrdersQueryHandler lists orders in WarehousePick whose
// lines are all picked, together with their packing progress.
type GetPackingReadyOrdersQueryHandler struct {
	readers ReaderFactory
}

// NewGetPackingReadyOrdersQueryHandler creates the handler.
func NewGetPackingReadyOrdersQueryHandler(readers ReaderFactory) GetPackingReadyOrdersQueryHandler {
	return GetPackingReadyOrdersQueryHandler{readers: readers}
}

// Handle returns the orders oldest first; an empty slice when none are ready.
func (h GetPackingReadyOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetPackingReadyOrdersQuery,
) ([]PackingOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.readers, func(r Reader) ([]PackingOrderView, error) {
		orders, err := r.OrderRepository().ListByStatus(ctx, order.WarehousePick)
		if err != nil || len(orders) == 0 {
			return []PackingOrderView{}, err
		}

		ids := make([]kernel.UUID, 0, len(orders))
		for _, o := range orders {
			ids = append(ids, o.ID())
		}
		picks, err := r.TaskRepository().PickState(ctx, ids...)
		if err != nil {
			return nil, err
		}

		views := make([]PackingOrderView, 0)
		for _, o := range orders {
			if !warehouse.IsPackEligible(o, picks) {
				continue
			}

			session, err := r.TaskRepository().GetPackingSession(ctx, o.ID())
			if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
				return nil, err
			}

			missing := session.MissingSKUs(o.LineSKUs())
			views = append(views, PackingOrderView{
				OrderID:      o.ID().String(),
				OrderNumber:  o.Number(),
				Customer:     o.Customer(),
				Priority:     o.Priority().String(),
				SKUs:         o.LineSKUs(),
				VerifiedSKUs: session.VerifiedSKUs(),
				MissingSKUs:  missing,
				Complete:     len(missing) == 0,
			})
		}
		return views, nil
	})
}
