// Package inventoryrepo persists the stock ledger: one row per SKU plus its received batches.
package inventoryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// StockItemDTO is one ledger row. Quantities are stored as given; the invariant
// allocated <= on_hand is audited, not enforced by a constraint.
type StockItemDTO struct {
	SKU          string          `gorm:"type:varchar(64);primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Location     string          `gorm:"type:varchar(64);not null"`
	OnHand       int             `gorm:"type:int;not null"`
	Allocated    int             `gorm:"type:int;not null"`
	ReorderPoint int             `gorm:"type:int;not null"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Batches      []BatchDTO      `gorm:"foreignKey:SKU;references:SKU;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the stock ledger.
func (StockItemDTO) TableName() string {
	return "stock_items"
}

// BatchDTO is one received batch, owned by its stock row.
type BatchDTO struct {
	ID          string     `gorm:"type:varchar(64);primaryKey"`
	SKU         string     `gorm:"type:varchar(64);not null;index"`
	BatchNumber string     `gorm:"type:varchar(128);not null"`
	LotNumber   string     `gorm:"type:varchar(128)"`
	Expiry      *time.Time `gorm:"type:date"`
	Quantity    int        `gorm:"type:int;not null"`
	Compliance  int        `gorm:"type:smallint;not null"`
	ReceivedAt  time.Time  `gorm:"not null"`
}

// TableName specifies the database table name for batches.
func (BatchDTO) TableName() string {
	return "batches"
}

// fromDomain converts a ledger row and its batches to DTOs.
func fromDomain(item *inventory.StockItem) StockItemDTO {
	batches := make([]BatchDTO, 0, len(item.Batches()))
	for _, b := range item.Batches() {
		batches = append(batches, BatchDTO{
			ID:          b.ID(),
			SKU:         item.SKU(),
			BatchNumber: b.BatchNumber(),
			LotNumber:   b.LotNumber(),
			Expiry:      b.Expiry(),
			Quantity:    b.Quantity(),
			Compliance:  int(b.Compliance()),
			ReceivedAt:  b.ReceivedAt().UTC(),
		})
	}

	return StockItemDTO{
		SKU:          item.SKU(),
		Name:         item.Name(),
		Location:     item.Location().Code(),
		OnHand:       item.OnHand(),
		Allocated:    item.Allocated(),
		ReorderPoint: item.ReorderPoint(),
		UnitPrice:    item.UnitPrice(),
		Batches:      batches,
	}
}

// toDomain restores a ledger row as stored. Quantities are not checked, so a
// corrupted row still loads and is reported by the audit.
func toDomain(dto StockItemDTO) (*inventory.StockItem, error) {
	location, err := kernel.NewLocation(dto.Location)
	if err != nil {
		return nil, err
	}

	batches := make([]inventory.Batch, 0, len(dto.Batches))
	for _, b := range dto.Batches {
		batches = append(batches, inventory.RestoreBatch(b.ID, b.BatchNumber, b.LotNumber, b.Expiry, b.Quantity,
			inventory.ComplianceStatus(b.Compliance), b.ReceivedAt.UTC()))
	}

	return inventory.RestoreStockItem(dto.SKU, dto.Name, location, dto.OnHand, dto.Allocated, dto.ReorderPoint,
		dto.UnitPrice, batches), nil
}
