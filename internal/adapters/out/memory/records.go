package memory

import (
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/receiving"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
)

// Records are stored by value and never mutated after they are written, so a
// state snapshot only needs its maps copied.

// batchRecord is the stored form of inventory.Batch.
type batchRecord struct {
	ID          string
	BatchNumber string
	LotNumber   string
	Expiry      *time.Time
	Quantity    int
	Compliance  inventory.ComplianceStatus
	ReceivedAt  time.Time
}

// stockRecord is the stored form of a ledger row with its batches.
type stockRecord struct {
	SKU          string
	Name         string
	Location     string
	OnHand       int
	Allocated    int
	ReorderPoint int
	UnitPrice    decimal.Decimal
	Batches      []batchRecord
}

func stockFromDomain(item *inventory.StockItem) stockRecord {
	rec := stockRecord{
		SKU:          item.SKU(),
		Name:         item.Name(),
		Location:     item.Location().Code(),
		OnHand:       item.OnHand(),
		Allocated:    item.Allocated(),
		ReorderPoint: item.ReorderPoint(),
		UnitPrice:    item.UnitPrice(),
	}
	for _, b := range item.Batches() {
		rec.Batches = append(rec.Batches, batchRecord{
			ID:          b.ID(),
			BatchNumber: b.BatchNumber(),
			LotNumber:   b.LotNumber(),
			Expiry:      b.Expiry(),
			Quantity:    b.Quantity(),
			Compliance:  b.Compliance(),
			ReceivedAt:  b.ReceivedAt(),
		})
	}
	return rec
}

// toDomain restores the row without checking quantities, like the database adapter.
func (r stockRecord) toDomain() (*inventory.StockItem, error) {
	location, err := kernel.NewLocation(r.Location)
	if err != nil {
		return nil, err
	}
	batches := make([]inventory.Batch, 0, len(r.Batches))
	for _, b := range r.Batches {
		batches = append(batches, inventory.RestoreBatch(b.ID, b.BatchNumber, b.LotNumber, b.Expiry, b.Quantity,
			b.Compliance, b.ReceivedAt))
	}
	return inventory.RestoreStockItem(r.SKU, r.Name, location, r.OnHand, r.Allocated, r.ReorderPoint,
		r.UnitPrice, batches), nil
}

type lineRecord struct {
	SKU       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// orderRecord is the stored form of an order. Lines keep their order.
type orderRecord struct {
	ID              kernel.UUID
	Number          string
	Customer        string
	Priority        order.Priority
	ShippingAddress string
	Lines           []lineRecord
	Status          order.Status
	CreatedAt       time.Time
}

func orderFromDomain(o *order.Order) orderRecord {
	rec := orderRecord{
		ID:              o.ID(),
		Number:          o.Number(),
		Customer:        o.Customer(),
		Priority:        o.Priority(),
		ShippingAddress: o.ShippingAddress(),
		Status:          o.Status(),
		CreatedAt:       o.CreatedAt(),
	}
	for _, l := range o.Lines() {
		rec.Lines = append(rec.Lines, lineRecord{SKU: l.SKU(), Quantity: l.Quantity(), UnitPrice: l.UnitPrice()})
	}
	return rec
}

func (r orderRecord) toDomain() (*order.Order, error) {
	lines := make([]order.Line, 0, len(r.Lines))
	for _, l := range r.Lines {
		line, err := order.NewLine(l.SKU, l.Quantity, l.UnitPrice)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return order.RestoreOrder(r.ID, r.Number, r.Customer, r.Priority, r.ShippingAddress, lines, r.Status,
		r.CreatedAt), nil
}

// putawayRecord is the stored form of a putaway task.
type putawayRecord struct {
	ID         kernel.UUID
	ReceiptRef string
	SKU        string
	Quantity   int
	BatchID    string
	Source     string
	Suggested  string
	Priority   order.Priority
	Status     warehouse.PutawayStatus
	CreatedAt  time.Time
}

func putawayFromDomain(t *warehouse.PutawayTask) putawayRecord {
	return putawayRecord{
		ID:         t.ID(),
		ReceiptRef: t.ReceiptRef(),
		SKU:        t.SKU(),
		Quantity:   t.Quantity(),
		BatchID:    t.BatchID(),
		Source:     t.Source().Code(),
		Suggested:  t.Suggested().Code(),
		Priority:   t.Priority(),
		Status:     t.Status(),
		CreatedAt:  t.CreatedAt(),
	}
}

func (r putawayRecord) toDomain() (*warehouse.PutawayTask, error) {
	source, err := kernel.NewLocation(r.Source)
	if err != nil {
		return nil, err
	}
	suggested, err := kernel.NewLocation(r.Suggested)
	if err != nil {
		return nil, err
	}
	return warehouse.RestorePutawayTask(r.ID, r.ReceiptRef, r.SKU, r.Quantity, r.BatchID, source, suggested,
		r.Priority, r.Status, r.CreatedAt), nil
}

// purchaseOrderRecord is the stored form of a purchase order.
type purchaseOrderRecord struct {
	ID           kernel.UUID
	Number       string
	Supplier     string
	ExpectedDate time.Time
	Lines        []receiving.Line
	Status       receiving.Status
}

func purchaseOrderFromDomain(po *receiving.PurchaseOrder) purchaseOrderRecord {
	return purchaseOrderRecord{
		ID:           po.ID(),
		Number:       po.Number(),
		Supplier:     po.Supplier(),
		ExpectedDate: po.ExpectedDate(),
		Lines:        po.Lines(),
		Status:       po.Status(),
	}
}

func (r purchaseOrderRecord) toDomain() *receiving.PurchaseOrder {
	return receiving.RestorePurchaseOrder(r.ID, r.Number, r.Supplier, r.ExpectedDate, r.Lines, r.Status)
}
