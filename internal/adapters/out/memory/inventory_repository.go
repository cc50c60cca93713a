package memory

import (
	"context"
	"fmt"
	"sort"

	"fulfillment/internal/core/domain/model/inventory"
)

type inventoryRepository struct {
	uow *UnitOfWork
}

func stockKey(sku string) string {
	return "stock:" + sku
}

func (r *inventoryRepository) Add(_ context.Context, item *inventory.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	rec := stockFromDomain(item)
	return r.uow.write(func(s *state) error {
		if _, ok := s.stock[rec.SKU]; ok {
			return fmt.Errorf("%w: stock item %s", ErrDuplicateKey, rec.SKU)
		}
		s.stock[rec.SKU] = rec
		return nil
	})
}

func (r *inventoryRepository) Update(_ context.Context, item *inventory.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	rec := stockFromDomain(item)
	return r.uow.write(func(s *state) error {
		if _, ok := s.stock[rec.SKU]; !ok {
			return inventory.NewUnknownSKUError(rec.SKU)
		}
		s.stock[rec.SKU] = rec
		return nil
	})
}

func (r *inventoryRepository) Get(_ context.Context, sku string) (*inventory.StockItem, error) {
	rec, ok := r.uow.read().stock[sku]
	if !ok {
		return nil, inventory.NewUnknownSKUError(sku)
	}
	return rec.toDomain()
}

// GetForUpdate locks the SKU key until the unit of work ends.
func (r *inventoryRepository) GetForUpdate(ctx context.Context, sku string) (*inventory.StockItem, error) {
	err := r.uow.lockRow(ctx, stockKey(sku), func(latest, view *state) {
		if rec, ok := latest.stock[sku]; ok {
			view.stock[sku] = rec
		} else {
			delete(view.stock, sku)
		}
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, sku)
}

func (r *inventoryRepository) List(_ context.Context) ([]*inventory.StockItem, error) {
	st := r.uow.read()
	skus := make([]string, 0, len(st.stock))
	for sku := range st.stock {
		skus = append(skus, sku)
	}
	sort.Strings(skus)

	items := make([]*inventory.StockItem, 0, len(skus))
	for _, sku := range skus {
		item, err := st.stock[sku].toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
