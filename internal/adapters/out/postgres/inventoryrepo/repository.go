package inventoryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInventoryRepository implements ports.InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository binds the repository to db, usually a transaction.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add saves a new ledger row with its batches.
func (r *GormInventoryRepository) Add(ctx context.Context, item *inventory.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update writes quantities and upserts batches. Batches are never removed from a row.
func (r *GormInventoryRepository) Update(ctx context.Context, item *inventory.StockItem) error {
	if err := item.Validate(); err != nil {
		return err
	}

	dto := fromDomain(item)
	result := r.db.WithContext(ctx).Model(&StockItemDTO{}).Where("sku = ?", dto.SKU).Updates(map[string]any{
		"name":          dto.Name,
		"location":      dto.Location,
		"on_hand":       dto.OnHand,
		"allocated":     dto.Allocated,
		"reorder_point": dto.ReorderPoint,
		"unit_price":    dto.UnitPrice,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.NewUnknownSKUError(dto.SKU)
	}

	if len(dto.Batches) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "compliance"}),
		}).
		Create(&dto.Batches).Error
}

// Get reads a row without locking it.
func (r *GormInventoryRepository) Get(ctx context.Context, sku string) (*inventory.StockItem, error) {
	return r.get(r.db.WithContext(ctx), sku)
}

// GetForUpdate takes a row lock held until the surrounding transaction ends.
// Outside a transaction the lock is released as soon as the statement completes.
func (r *GormInventoryRepository) GetForUpdate(ctx context.Context, sku string) (*inventory.StockItem, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), sku)
}

// get loads one row with its batches through db, which may carry a locking clause.
func (r *GormInventoryRepository) get(db *gorm.DB, sku string) (*inventory.StockItem, error) {
	var dto StockItemDTO
	err := db.Preload("Batches", func(db *gorm.DB) *gorm.DB {
		return db.Order("received_at, id")
	}).First(&dto, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.NewUnknownSKUError(sku)
		}
		return nil, err
	}

	return toDomain(dto)
}

// List returns every row sorted by SKU.
func (r *GormInventoryRepository) List(ctx context.Context) ([]*inventory.StockItem, error) {
	var dtos []StockItemDTO
	err := r.db.WithContext(ctx).
		Preload("Batches", func(db *gorm.DB) *gorm.DB { return db.Order("received_at, id") }).
		Order("sku").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*inventory.StockItem, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
