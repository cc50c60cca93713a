package memory

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/receiving"
	"fulfillment/internal/pkg/errs"
)

// purchaseOrderRepository locks a purchase order read inside a transaction, so
// concurrent receipts against the same order are applied one after another.
type purchaseOrderRepository struct {
	uow *UnitOfWork
}

func purchaseOrderKey(number string) string {
	return "po:" + number
}

func (r *purchaseOrderRepository) Add(_ context.Context, po *receiving.PurchaseOrder) error {
	if err := po.Validate(); err != nil {
		return err
	}
	rec := purchaseOrderFromDomain(po)
	return r.uow.write(func(s *state) error {
		key := rec.ID.String()
		if _, ok := s.pos[key]; ok {
			return fmt.Errorf("%w: purchase order %s", ErrDuplicateKey, key)
		}
		if _, ok := findPurchaseOrder(s, rec.Number); ok {
			return fmt.Errorf("%w: purchase order number %s", ErrDuplicateKey, rec.Number)
		}
		s.pos[key] = rec
		return nil
	})
}

func (r *purchaseOrderRepository) Update(_ context.Context, po *receiving.PurchaseOrder) error {
	if err := po.Validate(); err != nil {
		return err
	}
	rec := purchaseOrderFromDomain(po)
	return r.uow.write(func(s *state) error {
		key := rec.ID.String()
		if _, ok := s.pos[key]; !ok {
			return errs.NewObjectNotFoundError("purchaseOrder", key)
		}
		s.pos[key] = rec
		return nil
	})
}

func (r *purchaseOrderRepository) Get(ctx context.Context, id kernel.UUID) (*receiving.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	rec, ok := r.uow.read().pos[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("purchaseOrder", id.String())
	}
	return r.GetByNumber(ctx, rec.Number)
}

func (r *purchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*receiving.PurchaseOrder, error) {
	err := r.uow.lockRow(ctx, purchaseOrderKey(number), func(latest, view *state) {
		if rec, ok := findPurchaseOrder(latest, number); ok {
			view.pos[rec.ID.String()] = rec
		}
	})
	if err != nil {
		return nil, err
	}

	rec, ok := findPurchaseOrder(r.uow.read(), number)
	if !ok {
		return nil, errs.NewObjectNotFoundError("purchaseOrder", number)
	}
	return rec.toDomain(), nil
}

func (r *purchaseOrderRepository) List(_ context.Context) ([]*receiving.PurchaseOrder, error) {
	recs := make([]purchaseOrderRecord, 0)
	for _, rec := range r.uow.read().pos {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Number < recs[j].Number })

	pos := make([]*receiving.PurchaseOrder, 0, len(recs))
	for _, rec := range recs {
		pos = append(pos, rec.toDomain())
	}
	return pos, nil
}

func findPurchaseOrder(s *state, number string) (purchaseOrderRecord, bool) {
	for _, rec := range s.pos {
		if rec.Number == number {
			return rec, true
		}
	}
	return purchaseOrderRecord{}, false
}
