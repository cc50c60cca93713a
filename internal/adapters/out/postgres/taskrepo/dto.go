// Package taskrepo persists warehouse task state: pending putaway tasks, the
// picked flag of order lines and packing sessions.
package taskrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PutawayTaskDTO represents the database structure of a putaway task.
type PutawayTaskDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReceiptRef string    `gorm:"type:varchar(64);not null;index"`
	SKU        string    `gorm:"type:varchar(64);not null"`
	Quantity   int       `gorm:"type:int;not null"`
	BatchID    string    `gorm:"type:varchar(64);not null"`
	Source     string    `gorm:"type:varchar(64);not null"`
	Suggested  string    `gorm:"type:varchar(64);not null"`
	Priority   int       `gorm:"type:smallint;not null"`
	Status     int       `gorm:"type:smallint;not null"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for putaway tasks.
func (PutawayTaskDTO) TableName() string {
	return "putaway_tasks"
}

// PickDTO marks one order line as picked. Absence of a row means pending.
type PickDTO struct {
	OrderID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineIndex int       `gorm:"type:int;primaryKey;autoIncrement:false"`
	PickedAt  time.Time `gorm:"not null"`
}

// TableName specifies the database table name for pick marks.
func (PickDTO) TableName() string {
	return "picks"
}

// PackingSessionDTO stores the verified SKUs of one order.
type PackingSessionDTO struct {
	OrderID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VerifiedSKUs pq.StringArray `gorm:"type:text[];not null"`
	UpdatedAt    time.Time      `gorm:"not null"`
}

// TableName specifies the database table name for packing sessions.
func (PackingSessionDTO) TableName() string {
	return "packing_sessions"
}

// putawayFromDomain converts a putaway task to its row.
func putawayFromDomain(t *warehouse.PutawayTask) PutawayTaskDTO {
	return PutawayTaskDTO{
		ID:         t.ID().Bytes(),
		ReceiptRef: t.ReceiptRef(),
		SKU:        t.SKU(),
		Quantity:   t.Quantity(),
		BatchID:    t.BatchID(),
		Source:     t.Source().Code(),
		Suggested:  t.Suggested().Code(),
		Priority:   int(t.Priority()),
		Status:     int(t.Status()),
		CreatedAt:  t.CreatedAt().UTC(),
	}
}

// putawayToDomain restores a putaway task as stored.
func putawayToDomain(dto PutawayTaskDTO) (*warehouse.PutawayTask, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	source, err := kernel.NewLocation(dto.Source)
	if err != nil {
		return nil, err
	}
	suggested, err := kernel.NewLocation(dto.Suggested)
	if err != nil {
		return nil, err
	}

	return warehouse.RestorePutawayTask(id, dto.ReceiptRef, dto.SKU, dto.Quantity, dto.BatchID, source, suggested,
		order.Priority(dto.Priority), warehouse.PutawayStatus(dto.Status), dto.CreatedAt.UTC()), nil
}

// pickToDomain converts a pick mark to the line it references.
func pickToDomain(dto PickDTO) (warehouse.LineRef, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return warehouse.LineRef{}, err
	}
	return warehouse.LineRef{OrderID: id, LineIndex: dto.LineIndex}, nil
}
