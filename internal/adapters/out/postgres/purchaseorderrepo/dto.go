// Package purchaseorderrepo persists inbound purchase orders and their lines.
package purchaseorderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/receiving"

	"github.com/google/uuid"
)

// PurchaseOrderDTO represents the database structure of a purchase order.
type PurchaseOrderDTO struct {
	ID           uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Number       string                 `gorm:"type:varchar(64);not null;uniqueIndex"`
	Supplier     string                 `gorm:"type:varchar(255);not null"`
	ExpectedDate time.Time              `gorm:"not null"`
	Status       int                    `gorm:"type:smallint;not null"`
	Lines        []PurchaseOrderLineDTO `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for purchase orders.
func (PurchaseOrderDTO) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderLineDTO is one expected SKU with its received quantity.
type PurchaseOrderLineDTO struct {
	PurchaseOrderID uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineIndex       int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	SKU             string    `gorm:"type:varchar(64);not null"`
	ExpectedQty     int       `gorm:"type:int;not null"`
	ReceivedQty     int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for purchase order lines.
func (PurchaseOrderLineDTO) TableName() string {
	return "purchase_order_lines"
}

// fromDomain converts a purchase order to its rows.
func fromDomain(po *receiving.PurchaseOrder) PurchaseOrderDTO {
	id := po.ID().Bytes()
	lines := make([]PurchaseOrderLineDTO, 0, len(po.Lines()))
	for i, l := range po.Lines() {
		lines = append(lines, PurchaseOrderLineDTO{
			PurchaseOrderID: id,
			LineIndex:       i,
			SKU:             l.SKU,
			ExpectedQty:     l.ExpectedQty,
			ReceivedQty:     l.ReceivedQty,
		})
	}

	return PurchaseOrderDTO{
		ID:           id,
		Number:       po.Number(),
		Supplier:     po.Supplier(),
		ExpectedDate: po.ExpectedDate().UTC(),
		Status:       int(po.Status()),
		Lines:        lines,
	}
}

// toDomain restores a purchase order as stored.
func toDomain(dto PurchaseOrderDTO) (*receiving.PurchaseOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]receiving.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		lines = append(lines, receiving.Line{SKU: l.SKU, ExpectedQty: l.ExpectedQty, ReceivedQty: l.ReceivedQty})
	}

	return receiving.RestorePurchaseOrder(id, dto.Number, dto.Supplier, dto.ExpectedDate.UTC(), lines,
		receiving.Status(dto.Status)), nil
}
