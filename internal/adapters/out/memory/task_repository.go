package memory

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/errs"
)

type taskRepository struct {
	uow *UnitOfWork
}

func (r *taskRepository) AddPutaway(_ context.Context, task *warehouse.PutawayTask) error {
	if err := task.Validate(); err != nil {
		return err
	}
	rec := putawayFromDomain(task)
	return r.uow.write(func(s *state) error {
		key := rec.ID.String()
		if _, ok := s.putaways[key]; ok {
			return fmt.Errorf("%w: putaway task %s", ErrDuplicateKey, key)
		}
		s.putaways[key] = rec
		return nil
	})
}

func (r *taskRepository) GetPutaway(_ context.Context, id kernel.UUID) (*warehouse.PutawayTask, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.uow.read().putaways[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("putawayTask", id.String())
	}
	return rec.toDomain()
}

// DeletePutaway fails when the task is already gone, so of two concurrent
// confirmations only the first commits.
func (r *taskRepository) DeletePutaway(_ context.Context, id kernel.UUID) error {
	key := id.String()
	return r.uow.write(func(s *state) error {
		if _, ok := s.putaways[key]; !ok {
			return errs.NewObjectNotFoundError("putawayTask", key)
		}
		delete(s.putaways, key)
		return nil
	})
}

func (r *taskRepository) ListPutaways(_ context.Context) ([]*warehouse.PutawayTask, error) {
	recs := make([]putawayRecord, 0)
	for _, rec := range r.uow.read().putaways {
		if rec.Status == warehouse.PutawayPending {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
			return recs[i].CreatedAt.Before(recs[j].CreatedAt)
		}
		return recs[i].ID.String() < recs[j].ID.String()
	})

	tasks := make([]*warehouse.PutawayTask, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *taskRepository) MarkPicked(_ context.Context, ref warehouse.LineRef) error {
	return r.uow.write(func(s *state) error {
		s.picks[ref] = struct{}{}
		return nil
	})
}

func (r *taskRepository) PickState(_ context.Context, orderIDs ...kernel.UUID) (warehouse.PickState, error) {
	wanted := make(map[kernel.UUID]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		wanted[id] = struct{}{}
	}

	refs := make([]warehouse.LineRef, 0)
	for ref := range r.uow.read().picks {
		if _, ok := wanted[ref.OrderID]; ok || len(orderIDs) == 0 {
			refs = append(refs, ref)
		}
	}
	return warehouse.NewPickState(refs...), nil
}

func (r *taskRepository) ClearPicks(_ context.Context, orderID kernel.UUID) error {
	return r.uow.write(func(s *state) error {
		for ref := range s.picks {
			if ref.OrderID == orderID {
				delete(s.picks, ref)
			}
		}
		return nil
	})
}

func (r *taskRepository) GetPackingSession(_ context.Context, orderID kernel.UUID) (*warehouse.PackingSession, error) {
	skus, ok := r.uow.read().sessions[orderID.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("packingSession", orderID.String())
	}
	return warehouse.RestorePackingSession(orderID, skus), nil
}

func (r *taskRepository) SavePackingSession(_ context.Context, session *warehouse.PackingSession) error {
	if err := session.Validate(); err != nil {
		return err
	}
	key := session.OrderID().String()
	skus := session.VerifiedSKUs()
	return r.uow.write(func(s *state) error {
		s.sessions[key] = skus
		return nil
	})
}

func (r *taskRepository) DeletePackingSession(_ context.Context, orderID kernel.UUID) error {
	key := orderID.String()
	return r.uow.write(func(s *state) error {
		delete(s.sessions, key)
		return nil
	})
}
