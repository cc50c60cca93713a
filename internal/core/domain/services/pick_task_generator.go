package services

import (
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
)

// PickTaskGenerator is a pure function of orders, pick state and SKU locations.
type PickTaskGenerator struct{}

// NewPickTaskGenerator returns a stateless generator.
func NewPickTaskGenerator() PickTaskGenerator {
	return PickTaskGenerator{}
}

// Generate emits one Pending task per unpicked line of every order in
// WarehousePick. Orders are taken oldest first, lines in line order, so the
// output is the same for the same input whatever order it arrived in.
// SKUs missing from locations get kernel.UnknownLocation.
func (g PickTaskGenerator) Generate(
	orders []*order.Order,
	picks warehouse.PickState,
	locations map[string]kernel.Location,
) []warehouse.PickingTask {
	sorted := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status() == order.WarehousePick {
			sorted = append(sorted, o)
		}
	}
	sortOrders(sorted)

	var tasks []warehouse.PickingTask
	for _, o := range sorted {
		for i, line := range o.Lines() {
			if picks.IsPicked(warehouse.LineRef{OrderID: o.ID(), LineIndex: i}) {
				continue
			}
			tasks = append(tasks, warehouse.NewPickingTask(o, i, line, locate(locations, line.SKU()), warehouse.Pending))
		}
	}
	return tasks
}

// TaskFor derives the task of one line whatever its pick status.
func (g PickTaskGenerator) TaskFor(
	o *order.Order,
	lineIndex int,
	picks warehouse.PickState,
	locations map[string]kernel.Location,
) (warehouse.PickingTask, error) {
	line, err := o.Line(lineIndex)
	if err != nil {
		return warehouse.PickingTask{}, err
	}
	status := warehouse.Pending
	if picks.IsPicked(warehouse.LineRef{OrderID: o.ID(), LineIndex: lineIndex}) {
		status = warehouse.Picked
	}
	return warehouse.NewPickingTask(o, lineIndex, line, locate(locations, line.SKU()), status), nil
}

// locate falls back to kernel.UnknownLocation for SKUs without a row.
func locate(locations map[string]kernel.Location, sku string) kernel.Location {
	if loc, ok := locations[sku]; ok {
		return loc
	}
	return kernel.UnknownLocation()
}

// sortOrders sorts by creation time, then number for a stable tie break.
func sortOrders(orders []*order.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i], orders[j]
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().Before(b.CreatedAt())
		}
		if a.Number() != b.Number() {
			return a.Number() < b.Number()
		}
		return a.ID().String() < b.ID().String()
	})
}
