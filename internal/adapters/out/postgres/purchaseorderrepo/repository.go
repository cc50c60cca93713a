package purchaseorderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/receiving"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements ports.PurchaseOrderRepository using GORM.
// Get and GetByNumber lock the row so concurrent receipts against one purchase
// order are applied one after another.
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository binds the repository to db, usually a transaction.
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// Add inserts the purchase order with its lines.
func (r *GormPurchaseOrderRepository) Add(ctx context.Context, po *receiving.PurchaseOrder) error {
	if err := po.Validate(); err != nil {
		return err
	}

	dto := fromDomain(po)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes the status and the received quantity of every line.
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, po *receiving.PurchaseOrder) error {
	if err := po.Validate(); err != nil {
		return err
	}

	dto := fromDomain(po)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&PurchaseOrderDTO{}).Where("id = ?", dto.ID).Update("status", dto.Status)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("purchaseOrder", po.ID().String())
		}

		for _, l := range dto.Lines {
			if err := tx.Model(&PurchaseOrderLineDTO{}).
				Where("purchase_order_id = ? AND line_index = ?", l.PurchaseOrderID, l.LineIndex).
				Update("received_qty", l.ReceivedQty).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Get returns errs.ObjectNotFoundError for an unknown id.
func (r *GormPurchaseOrderRepository) Get(ctx context.Context, id kernel.UUID) (*receiving.PurchaseOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "purchaseOrderId", id.String(), "id = ?", id.Bytes())
}

// GetByNumber returns errs.ObjectNotFoundError for an unknown number.
func (r *GormPurchaseOrderRepository) GetByNumber(ctx context.Context, number string) (*receiving.PurchaseOrder, error) {
	return r.first(ctx, "purchaseOrderNumber", number, "number = ?", number)
}

// List returns every purchase order sorted by number.
func (r *GormPurchaseOrderRepository) List(ctx context.Context) ([]*receiving.PurchaseOrder, error) {
	var dtos []PurchaseOrderDTO
	if err := r.withLines(ctx).Order("number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	pos := make([]*receiving.PurchaseOrder, 0, len(dtos))
	for _, dto := range dtos {
		po, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		pos = append(pos, po)
	}
	return pos, nil
}

// first loads the single purchase order matching the condition.
func (r *GormPurchaseOrderRepository) first(
	ctx context.Context,
	param, key string,
	query string,
	args ...any,
) (*receiving.PurchaseOrder, error) {
	var dto PurchaseOrderDTO
	err := r.withLines(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, key)
		}
		return nil, err
	}
	return toDomain(dto)
}

// withLines preloads lines in SKU order.
func (r *GormPurchaseOrderRepository) withLines(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_index")
	})
}
