package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrGetStockLevelsQueryIsNotConstructed is returned by Validate for a zero value.
var ErrGetStockLevelsQueryIsNotConstructed = errors.New(
	"GetStockLevelsQuery must be created via NewGetStockLevelsQuery constructor",
)

// GetStockLevelsQuery projects the ledger: quantities, level and invariant state per SKU.
type GetStockLevelsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStockLevelsQuery takes no parameters.
func NewGetStockLevelsQuery() GetStockLevelsQuery {
	return GetStockLevelsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStockLevelsQuery) Validate() error {
	return q.guard.Validate(ErrGetStockLevelsQueryIsNotConstructed)
}

// BatchView is one received batch of a SKU.
type BatchView struct {
	ID          string
	BatchNumber string
	LotNumber   string
	Expiry      string
	Quantity    int
	Compliance  string
	ReceivedAt  string
}

// StockLevelView is one ledger row. InvariantViolation is set, never corrected,
// when allocated exceeds on hand.
type StockLevelView struct {
	SKU                string
	Name               string
	Location           string
	Zone               string
	OnHand             int
	Allocated          int
	Available          int
	ReorderPoint       int
	UnitPrice          decimal.Decimal
	Level              string
	NeedsReplenishment bool
	InvariantViolation string
	Batches            []BatchView
}

// StockSummary aggregates the ledger. StockOuts counts SKUs with nothing
// available and InvariantViolations counts rows an operator has to repair.
type StockSummary struct {
	TotalOnHand         int
	TotalAllocated      int
	TotalAvailable      int
	ReplenishmentNeeded int
	StockOuts           int
	InvariantViolations int
}

// StockLevelsView lists every SKU sorted by SKU, with the summary.
type StockLevelsView struct {
	Items   []StockLevelView
	Summary StockSummary
}
