package inventory

// Level classifies a SKU for replenishment. See StockItem.Level.
type Level int

const (
	// InStock means more than the reorder point is available.
	InStock Level = iota
	// Low means something is available but no more than the reorder point.
	Low
	// OutOfStock means nothing is available.
	OutOfStock
)

// String returns the wire name used by the stock level query.
func (l Level) String() string {
	switch l {
	case OutOfStock:
		return "OutOfStock"
	case Low:
		return "Low"
	default:
		return "InStock"
	}
}

// NeedsReplenishment is true for Low and OutOfStock.
func (l Level) NeedsReplenishment() bool {
	return l != InStock
}
