package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
)

// GetPickingTasksQueryHandler recomputes tasks from orders and pick state on
// every call; there is no task store to go stale.
type GetPickingTasksQueryHandler struct {
	readers   ReaderFactory
	generator services.PickTaskGenerator
}

// NewGetPickingTasksQueryHandler creates the handler.
func NewGetPickingTasksQueryHandler(readers ReaderFactory) GetPickingTasksQueryHandler {
	return GetPickingTasksQueryHandler{readers: readers, generator: services.NewPickTaskGenerator()}
}

// Handle derives and groups the pending tasks of every order in WarehousePick.
func (h GetPickingTasksQueryHandler) Handle(ctx context.Context, query GetPickingTasksQuery) (PickingTasksView, error) {
	if err := query.Validate(); err != nil {
		return PickingTasksView{}, err
	}

	tasks, err := read(ctx, h.readers, func(r Reader) ([]warehouse.PickingTask, error) {
		orders, err := r.OrderRepository().ListByStatus(ctx, order.WarehousePick)
		if err != nil {
			return nil, err
		}

		ids := make([]kernel.UUID, 0, len(orders))
		skus := make(map[string]struct{})
		for _, o := range orders {
			ids = append(ids, o.ID())
			for _, sku := range o.LineSKUs() {
				skus[sku] = struct{}{}
			}
		}

		var picks warehouse.PickState
		if len(ids) > 0 {
			if picks, err = r.TaskRepository().PickState(ctx, ids...); err != nil {
				return nil, err
			}
		}

		locations := make(map[string]kernel.Location, len(skus))
		for sku := range skus {
			item, err := r.InventoryRepository().Get(ctx, sku)
			if errors.Is(err, inventory.ErrUnknownSKU) {
				continue
			}
			if err != nil {
				return nil, err
			}
			locations[sku] = item.Location()
		}

		return h.generator.Generate(orders, picks, locations), nil
	})
	if err != nil {
		return PickingTasksView{}, err
	}

	groups, err := warehouse.GroupTasks(query.Strategy(), tasks)
	if err != nil {
		return PickingTasksView{}, err
	}

	view := PickingTasksView{Strategy: query.Strategy().String(), Pending: len(tasks)}
	for _, g := range groups {
		gv := TaskGroupView{Key: g.Key, Title: g.Title, TotalQuantity: g.TotalQuantity()}
		for _, t := range g.Tasks {
			gv.Tasks = append(gv.Tasks, pickingTaskView(t))
		}
		view.Groups = append(view.Groups, gv)
	}
	return view, nil
}

func pickingTaskView(t warehouse.PickingTask) PickingTaskView {
	return PickingTaskView{
		ID:          t.ID(),
		OrderID:     t.OrderID().String(),
		OrderNumber: t.OrderNumber(),
		LineIndex:   t.LineIndex(),
		Priority:    t.Priority().String(),
		SKU:         t.SKU(),
		Quantity:    t.Quantity(),
		Location:    t.Location().Code(),
		Zone:        t.Zone(),
		Status:      t.Status().String(),
	}
}
