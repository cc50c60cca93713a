package queries

import (
	"context"
	"time"
)

// GetPutawayTasksQueryHandler reads pending putaway tasks.
type GetPutawayTasksQueryHandler struct {
	readers ReaderFactory
}

// NewGetPutawayTasksQueryHandler creates the handler.
func NewGetPutawayTasksQueryHandler(readers ReaderFactory) GetPutawayTasksQueryHandler {
	return GetPutawayTasksQueryHandler{readers: readers}
}

// Handle lists pending putaway tasks, oldest first.
func (h GetPutawayTasksQueryHandler) Handle(ctx context.Context, query GetPutawayTasksQuery) ([]PutawayTaskView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return read(ctx, h.readers, func(r Reader) ([]PutawayTaskView, error) {
		tasks, err := r.TaskRepository().ListPutaways(ctx)
		if err != nil {
			return nil, err
		}

		views := make([]PutawayTaskView, 0, len(tasks))
		for _, t := range tasks {
			views = append(views, PutawayTaskView{
				ID:         t.ID().String(),
				ReceiptRef: t.ReceiptRef(),
				SKU:        t.SKU(),
				Quantity:   t.Quantity(),
				BatchID:    t.BatchID(),
				Source:     t.Source().Code(),
				Suggested:  t.Suggested().Code(),
				Priority:   t.Priority().String(),
				Status:     t.Status().String(),
				CreatedAt:  t.CreatedAt().Format(time.RFC3339),
			})
		}
		return views, nil
	})
}
