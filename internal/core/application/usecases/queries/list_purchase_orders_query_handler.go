package queries

import (
	"context"
	"time"
)

// ListPurchaseOrdersQueryHandler reads purchase orders.
type ListPurchaseOrdersQueryHandler struct {
	readers ReaderFactory
}

// NewListPurchaseOrdersQueryHandler creates the handler.
func NewListPurchaseOrdersQueryHandler(readers ReaderFactory) ListPurchaseOrdersQueryHandler {
	return ListPurchaseOrdersQueryHandler{readers: readers}
}

// Handle returns purchase orders sorted by number.
func (h ListPurchaseOrdersQueryHandler) Handle(ctx context.Context, query ListPurchaseOrdersQuery) ([]PurchaseOrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.readers, func(r Reader) ([]PurchaseOrderView, error) {
		pos, err := r.PurchaseOrderRepository().List(ctx)
		if err != nil {
			return nil, err
		}

		views := make([]PurchaseOrderView, 0, len(pos))
		for _, po := range pos {
			v := PurchaseOrderView{
				ID:           po.ID().String(),
				Number:       po.Number(),
				Supplier:     po.Supplier(),
				ExpectedDate: po.ExpectedDate().Format(time.DateOnly),
				Status:       po.Status().String(),
			}
			for _, l := range po.Lines() {
				v.Lines = append(v.Lines, PurchaseOrderLineView{
					SKU:         l.SKU,
					ExpectedQty: l.ExpectedQty,
					ReceivedQty: l.ReceivedQty,
					Status:      l.StatusString(),
				})
			}
			views = append(views, v)
		}
		return views, nil
	})
}
