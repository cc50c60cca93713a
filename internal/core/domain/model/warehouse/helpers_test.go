package warehouse_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newOrder(t *testing.T, priority order.Priority, status order.Status, skus ...string) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(skus))
	for i, sku := range skus {
		l, err := order.NewLine(sku, i+1, decimal.NewFromInt(10))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	return order.RestoreOrder(kernel.NewUUID(), "SO-"+skus[0], "Customer", priority, "Address",
		lines, status, time.Now())
}

func taskFor(t *testing.T, o *order.Order, index int, location string, status warehouse.TaskStatus) warehouse.PickingTask {
	t.Helper()
	line, err := o.Line(index)
	require.NoError(t, err)
	return warehouse.NewPickingTask(o, index, line, kernel.MustLocation(location), status)
}
