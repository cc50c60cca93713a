package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// ErrGetPutawayTasksQueryIsNotConstructed is returned by Validate for a zero value.
var ErrGetPutawayTasksQueryIsNotConstructed = errors.New(
	"GetPutawayTasksQuery must be created via NewGetPutawayTasksQuery constructor",
)

// GetPutawayTasksQuery lists the goods waiting at the receiving dock.
type GetPutawayTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPutawayTasksQuery takes no parameters.
func NewGetPutawayTasksQuery() GetPutawayTasksQuery {
	return GetPutawayTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPutawayTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetPutawayTasksQueryIsNotConstructed)
}

// PutawayTaskView is one pending putaway task.
type PutawayTaskView struct {
	ID         string
	ReceiptRef string
	SKU        string
	Quantity   int
	BatchID    string
	Source     string
	Suggested  string
	Priority   string
	Status     string
	CreatedAt  string
}
