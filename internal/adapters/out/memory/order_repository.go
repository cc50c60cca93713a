package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// aggregateTracker collects orders whose events are published after commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

type orderRepository struct {
	uow     *UnitOfWork
	tracker aggregateTracker
}

func (r *orderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := orderFromDomain(aggregate)
	err := r.uow.write(func(s *state) error {
		key := rec.ID.String()
		if _, ok := s.orders[key]; ok {
			return fmt.Errorf("%w: order %s", ErrDuplicateKey, key)
		}
		for _, o := range s.orders {
			if o.Number == rec.Number {
				return fmt.Errorf("%w: order number %s", ErrDuplicateKey, rec.Number)
			}
		}
		s.orders[key] = rec
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *orderRepository) Update(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	rec := orderFromDomain(aggregate)
	err := r.uow.write(func(s *state) error {
		key := rec.ID.String()
		if _, ok := s.orders[key]; !ok {
			return errs.NewObjectNotFoundError("order", key)
		}
		s.orders[key] = rec
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func orderKey(id string) string {
	return "order:" + id
}

// GetForUpdate locks the order key until the unit of work ends.
func (r *orderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	key := id.String()
	err := r.uow.lockRow(ctx, orderKey(key), func(latest, view *state) {
		if rec, ok := latest.orders[key]; ok {
			view.orders[key] = rec
		} else {
			delete(view.orders, key)
		}
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

func (r *orderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.uow.read().orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.toDomain()
}

func (r *orderRepository) ListByStatus(_ context.Context, statuses ...order.Status) ([]*order.Order, error) {
	recs := make([]orderRecord, 0)
	for _, rec := range r.uow.read().orders {
		if len(statuses) == 0 || slices.Contains(statuses, rec.Status) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		return a.ID.String() < b.ID.String()
	})

	orders := make([]*order.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
