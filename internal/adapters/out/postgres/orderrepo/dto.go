// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// An order is one row in orders plus its immutable lines in order_lines.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is indexed for the picking and packing projections.
type OrderDTO struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Number          string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	Customer        string         `gorm:"type:varchar(255);not null"`
	Priority        int            `gorm:"type:smallint;not null"`
	ShippingAddress string         `gorm:"type:text;not null"`
	Status          int            `gorm:"type:smallint;not null;index"`
	CreatedAt       time.Time      `gorm:"not null;index"`
	Lines           []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for orders.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderLineDTO is keyed by (order_id, line_index); the index is the line's position in the order.
type OrderLineDTO struct {
	OrderID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LineIndex int             `gorm:"type:int;primaryKey;autoIncrement:false"`
	SKU       string          `gorm:"type:varchar(64);not null"`
	Quantity  int             `gorm:"type:int;not null"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(18,2);not null"`
}

// TableName specifies the database table name for order lines.
func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order aggregate to its rows. Line indexes follow
// the order of Lines.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:   id,
			LineIndex: i,
			SKU:       l.SKU(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
		})
	}

	return OrderDTO{
		ID:              id,
		Number:          o.Number(),
		Customer:        o.Customer(),
		Priority:        int(o.Priority()),
		ShippingAddress: o.ShippingAddress(),
		Status:          int(o.Status()),
		CreatedAt:       o.CreatedAt().UTC(),
		Lines:           lines,
	}
}

// toDomain rebuilds the aggregate with RestoreOrder. Lines must arrive sorted by line_index.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, err := order.NewLine(l.SKU, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(id, dto.Number, dto.Customer, order.Priority(dto.Priority), dto.ShippingAddress,
		lines, order.Status(dto.Status), dto.CreatedAt.UTC()), nil
}
