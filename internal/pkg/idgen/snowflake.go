// Package idgen issues human-facing, time-ordered identifiers (order numbers,
// batch ids, purchase order numbers) from a snowflake node.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// Prefixes of the issued identifiers.
const (
	OrderNumberPrefix         = "SO"
	BatchIDPrefix             = "B"
	PurchaseOrderNumberPrefix = "PO"
)

// Generator wraps a snowflake node. It is safe for concurrent use.
type Generator struct {
	node *snowflake.Node
}

// NewGenerator creates a generator for the given node id (0..1023).
func NewGenerator(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node %d: %w", nodeID, err)
	}
	return &Generator{node: node}, nil
}

// GenerateID returns the raw snowflake value.
func (g *Generator) GenerateID() int64 {
	return g.node.Generate().Int64()
}

// OrderNumber returns "SO-<snowflake>".
func (g *Generator) OrderNumber() string {
	return g.prefixed(OrderNumberPrefix)
}

// BatchID returns "B-<snowflake>".
func (g *Generator) BatchID() string {
	return g.prefixed(BatchIDPrefix)
}

// PurchaseOrderNumber returns "PO-<snowflake>".
func (g *Generator) PurchaseOrderNumber() string {
	return g.prefixed(PurchaseOrderNumberPrefix)
}

func (g *Generator) prefixed(prefix string) string {
	return prefix + "-" + g.node.Generate().String()
}
