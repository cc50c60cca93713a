package servers

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Reasons []string       `json:"reasons,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type NewOrderLine struct {
	Sku       string  `json:"sku" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice *string `json:"unitPrice,omitempty" validate:"omitempty,numeric"`
}

type NewOrder struct {
	Customer        string         `json:"customer" validate:"required"`
	Priority        string         `json:"priority" validate:"required,oneof=Normal High Critical"`
	ShippingAddress string         `json:"shippingAddress" validate:"required"`
	Lines           []NewOrderLine `json:"lines" validate:"required,min=1,dive"`
}

type CreatedOrder struct {
	OrderId openapi_types.UUID `json:"orderId"`
	Number  string             `json:"number"`
}

type OrderLine struct {
	Index     int    `json:"index"`
	TaskId    string `json:"taskId"`
	Sku       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
	Picked    bool   `json:"picked"`
	Verified  bool   `json:"verified"`
}

type Order struct {
	Id              openapi_types.UUID `json:"id"`
	Number          string             `json:"number"`
	Customer        string             `json:"customer"`
	Priority        string             `json:"priority"`
	Status          string             `json:"status"`
	ShippingAddress string             `json:"shippingAddress"`
	CreatedAt       string             `json:"createdAt"`
	Total           string             `json:"total"`
	PackEligible    bool               `json:"packEligible"`
	Lines           []OrderLine        `json:"lines"`
}

type CheckResult struct {
	Check      string   `json:"check"`
	Verdict    string   `json:"verdict"`
	Reasons    []string `json:"reasons,omitempty"`
	DurationMs int64    `json:"durationMs"`
}

type ValidationResult struct {
	Status           string        `json:"status"`
	AlreadyValidated bool          `json:"alreadyValidated"`
	Checks           []CheckResult `json:"checks"`
}

type PackItem struct {
	Sku string `json:"sku" validate:"required"`
}

type PackingState struct {
	Verified    bool     `json:"verified"`
	MissingSkus []string `json:"missingSkus"`
}

type PackingOrder struct {
	OrderId      string   `json:"orderId"`
	OrderNumber  string   `json:"orderNumber"`
	Customer     string   `json:"customer"`
	Priority     string   `json:"priority"`
	Skus         []string `json:"skus"`
	VerifiedSkus []string `json:"verifiedSkus"`
	MissingSkus  []string `json:"missingSkus"`
	Complete     bool     `json:"complete"`
}

type PickingTask struct {
	Id          string `json:"id"`
	OrderId     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	LineIndex   int    `json:"lineIndex"`
	Priority    string `json:"priority"`
	Sku         string `json:"sku"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location"`
	Zone        string `json:"zone"`
	Status      string `json:"status"`
}

type TaskGroup struct {
	Key           string        `json:"key"`
	Title         string        `json:"title"`
	TotalQuantity int           `json:"totalQuantity"`
	Tasks         []PickingTask `json:"tasks"`
}

type PickingTasks struct {
	Strategy string      `json:"strategy"`
	Pending  int         `json:"pending"`
	Groups   []TaskGroup `json:"groups"`
}

// GetPickingTasksParams defines parameters for GetPickingTasks.
type GetPickingTasksParams struct {
	Strategy *string `form:"strategy,omitempty" json:"strategy,omitempty"`
}

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *[]string `form:"status,omitempty" json:"status,omitempty"`
}

type PickScan struct {
	ScannedLocation string `json:"scannedLocation"`
	ScannedSku      string `json:"scannedSku"`
}

type PickConfirmation struct {
	TaskId        string `json:"taskId"`
	AlreadyPicked bool   `json:"alreadyPicked"`
	PackEligible  bool   `json:"packEligible"`
}

type PutawayTask struct {
	Id         string `json:"id"`
	ReceiptRef string `json:"receiptRef"`
	Sku        string `json:"sku"`
	Quantity   int    `json:"quantity"`
	BatchId    string `json:"batchId"`
	Source     string `json:"source"`
	Suggested  string `json:"suggested"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}

type Batch struct {
	Id          string `json:"id"`
	BatchNumber string `json:"batchNumber"`
	LotNumber   string `json:"lotNumber"`
	Expiry      string `json:"expiry,omitempty"`
	Quantity    int    `json:"quantity"`
	Compliance  string `json:"compliance"`
	ReceivedAt  string `json:"receivedAt"`
}

type StockLevel struct {
	Sku                string  `json:"sku"`
	Name               string  `json:"name"`
	Location           string  `json:"location"`
	Zone               string  `json:"zone"`
	OnHand             int     `json:"onHand"`
	Allocated          int     `json:"allocated"`
	Available          int     `json:"available"`
	ReorderPoint       int     `json:"reorderPoint"`
	UnitPrice          string  `json:"unitPrice"`
	Level              string  `json:"level"`
	NeedsReplenishment bool    `json:"needsReplenishment"`
	InvariantViolation string  `json:"invariantViolation,omitempty"`
	Batches            []Batch `json:"batches"`
}

type StockSummary struct {
	TotalOnHand         int `json:"totalOnHand"`
	TotalAllocated      int `json:"totalAllocated"`
	TotalAvailable      int `json:"totalAvailable"`
	ReplenishmentNeeded int `json:"replenishmentNeeded"`
	StockOuts           int `json:"stockOuts"`
	InvariantViolations int `json:"invariantViolations"`
}

type StockLevels struct {
	Items   []StockLevel `json:"items"`
	Summary StockSummary `json:"summary"`
}

type NewStockItem struct {
	Sku          string `json:"sku" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Location     string `json:"location" validate:"required"`
	ReorderPoint int    `json:"reorderPoint" validate:"gte=0"`
	UnitPrice    string `json:"unitPrice" validate:"required,numeric"`
	OnHand       int    `json:"onHand" validate:"gte=0"`
}

type Receipt struct {
	Sku                 string              `json:"sku" validate:"required"`
	Quantity            int                 `json:"quantity" validate:"gt=0"`
	BatchNumber         string              `json:"batchNumber,omitempty"`
	LotNumber           string              `json:"lotNumber,omitempty"`
	Expiry              *openapi_types.Date `json:"expiry,omitempty"`
	PurchaseOrderNumber string              `json:"purchaseOrderNumber,omitempty"`
}

type ReceiptResult struct {
	BatchId       string             `json:"batchId"`
	PutawayTaskId openapi_types.UUID `json:"putawayTaskId"`
}

type Release struct {
	Quantity int `json:"quantity" validate:"gt=0"`
}

type ReleaseResult struct {
	Released int `json:"released"`
}

type BatchCompliance struct {
	Status string `json:"status" validate:"required,oneof=PendingReview Compliant NonCompliant"`
}

type NewPurchaseOrderLine struct {
	Sku         string `json:"sku" validate:"required"`
	ExpectedQty int    `json:"expectedQty" validate:"gt=0"`
}

type NewPurchaseOrder struct {
	Supplier     string                 `json:"supplier" validate:"required"`
	ExpectedDate openapi_types.Date     `json:"expectedDate"`
	Lines        []NewPurchaseOrderLine `json:"lines" validate:"required,min=1,dive"`
}

type CreatedPurchaseOrder struct {
	Number string `json:"number"`
}

type PurchaseOrderLine struct {
	Sku         string `json:"sku"`
	ExpectedQty int    `json:"expectedQty"`
	ReceivedQty int    `json:"receivedQty"`
	Status      string `json:"status"`
}

type PurchaseOrder struct {
	Id           string              `json:"id"`
	Number       string              `json:"number"`
	Supplier     string              `json:"supplier"`
	ExpectedDate string              `json:"expectedDate"`
	Status       string              `json:"status"`
	Lines        []PurchaseOrderLine `json:"lines"`
}
