package postgres

import (
	"fulfillment/internal/adapters/out/postgres/inventoryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/purchaseorderrepo"
	"fulfillment/internal/adapters/out/postgres/taskrepo"

	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&inventoryrepo.StockItemDTO{},
		&inventoryrepo.BatchDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderLineDTO{},
		&taskrepo.PutawayTaskDTO{},
		&taskrepo.PickDTO{},
		&taskrepo.PackingSessionDTO{},
		&purchaseorderrepo.PurchaseOrderDTO{},
		&purchaseorderrepo.PurchaseOrderLineDTO{},
	}
}

// Migrate creates or alters the schema to match the DTOs.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
