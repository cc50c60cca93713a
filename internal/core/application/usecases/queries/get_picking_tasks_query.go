package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/guard"
)

// ErrGetPickingTasksQueryIsNotConstructed is returned by Validate for a zero value.
var ErrGetPickingTasksQueryIsNotConstructed = errors.New(
	"GetPickingTasksQuery must be created via NewGetPickingTasksQuery constructor",
)

// GetPickingTasksQuery derives the pending picking tasks and groups them by strategy.
type GetPickingTasksQuery struct {
	strategy warehouse.Strategy

	guard guard.ConstructorGuard
}

// NewGetPickingTasksQuery accepts Wave, Batch or Zone.
func NewGetPickingTasksQuery(strategy warehouse.Strategy) (GetPickingTasksQuery, error) {
	if _, err := warehouse.GroupTasks(strategy, nil); err != nil {
		return GetPickingTasksQuery{}, err
	}
	return GetPickingTasksQuery{strategy: strategy, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPickingTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetPickingTasksQueryIsNotConstructed)
}

// Strategy returns the grouping strategy.
func (q GetPickingTasksQuery) Strategy() warehouse.Strategy {
	return q.strategy
}

// PickingTaskView is one task on a picking list.
type PickingTaskView struct {
	ID          string
	OrderID     string
	OrderNumber string
	LineIndex   int
	Priority    string
	SKU         string
	Quantity    int
	Location    string
	Zone        string
	Status      string
}

// TaskGroupView is one picking list.
type TaskGroupView struct {
	Key           string
	Title         string
	TotalQuantity int
	Tasks         []PickingTaskView
}

// PickingTasksView is the grouped worklist. Pending counts every pending task
// across all groups.
type PickingTasksView struct {
	Strategy string
	Pending  int
	Groups   []TaskGroupView
}
