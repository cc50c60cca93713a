package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
)

// GetStockLevelsQueryHandler reads the whole ledger. Corrupted rows are
// reported in the view instead of failing the query.
type GetStockLevelsQueryHandler struct {
	readers ReaderFactory
}

// NewGetStockLevelsQueryHandler creates the handler.
func NewGetStockLevelsQueryHandler(readers ReaderFactory) GetStockLevelsQueryHandler {
	return GetStockLevelsQueryHandler{readers: readers}
}

// Handle returns an empty view for an empty ledger.
func (h GetStockLevelsQueryHandler) Handle(ctx context.Context, query GetStockLevelsQuery) (StockLevelsView, error) {
	if err := query.Validate(); err != nil {
		return StockLevelsView{}, err
	}

	return read(ctx, h.readers, func(r Reader) (StockLevelsView, error) {
		items, err := r.InventoryRepository().List(ctx)
		if err != nil {
			return StockLevelsView{}, err
		}

		view := StockLevelsView{Items: make([]StockLevelView, 0, len(items))}
		for _, item := range items {
			row := stockLevelView(item)
			view.Items = append(view.Items, row)

			view.Summary.TotalOnHand += row.OnHand
			view.Summary.TotalAllocated += row.Allocated
			view.Summary.TotalAvailable += row.Available
			if row.NeedsReplenishment {
				view.Summary.ReplenishmentNeeded++
			}
			if item.Level() == inventory.OutOfStock {
				view.Summary.StockOuts++
			}
			if row.InvariantViolation != "" {
				view.Summary.InvariantViolations++
			}
		}
		return view, nil
	})
}

func stockLevelView(item *inventory.StockItem) StockLevelView {
	row := StockLevelView{
		SKU:                item.SKU(),
		Name:               item.Name(),
		Location:           item.Location().Code(),
		Zone:               item.Location().Zone(),
		OnHand:             item.OnHand(),
		Allocated:          item.Allocated(),
		Available:          item.Available(),
		ReorderPoint:       item.ReorderPoint(),
		UnitPrice:          item.UnitPrice(),
		Level:              item.Level().String(),
		NeedsReplenishment: item.Level().NeedsReplenishment(),
	}
	if err := item.CheckInvariant(); err != nil {
		row.InvariantViolation = err.Error()
	}

	for _, b := range item.Batches() {
		bv := BatchView{
			ID:          b.ID(),
			BatchNumber: b.BatchNumber(),
			LotNumber:   b.LotNumber(),
			Quantity:    b.Quantity(),
			Compliance:  b.Compliance().String(),
			ReceivedAt:  b.ReceivedAt().Format(time.RFC3339),
		}
		if exp := b.Expiry(); exp != nil {
			bv.Expiry = exp.Format(time.DateOnly)
		}
		row.Batches = append(row.Batches, bv)
	}
	return row
}
