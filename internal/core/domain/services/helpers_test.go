package services_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type lineSpec struct {
	sku string
	qty int
}

func newOrder(t *testing.T, number string, priority order.Priority, lines ...lineSpec) *order.Order {
	t.Helper()
	ls := make([]order.Line, 0, len(lines))
	for _, l := range lines {
		line, err := order.NewLine(l.sku, l.qty, decimal.NewFromInt(1000))
		require.NoError(t, err)
		ls = append(ls, line)
	}
	o, err := order.NewOrder(kernel.NewUUID(), number, "PT Sentosa", priority, "Jakarta", ls, time.Now())
	require.NoError(t, err)
	return o
}

func stockOf(items ...*inventory.StockItem) map[string]*inventory.StockItem {
	m := make(map[string]*inventory.StockItem, len(items))
	for _, it := range items {
		m[it.SKU()] = it
	}
	return m
}

func item(sku string, onHand, allocated int) *inventory.StockItem {
	return inventory.RestoreStockItem(sku, "Name "+sku, kernel.MustLocation("Zone A-12"),
		onHand, allocated, 5, decimal.NewFromInt(1000), nil)
}

type creditProviderMock struct {
	mock.Mock
}

func (m *creditProviderMock) CheckCredit(ctx context.Context, customer string, amount decimal.Decimal) (validation.Outcome, error) {
	args := m.Called(ctx, customer, amount)
	return args.Get(0).(validation.Outcome), args.Error(1)
}

type complianceProviderMock struct {
	mock.Mock
}

func (m *complianceProviderMock) CheckCompliance(
	ctx context.Context, customer string, priority order.Priority, destination string,
) (validation.Outcome, error) {
	args := m.Called(ctx, customer, priority, destination)
	return args.Get(0).(validation.Outcome), args.Error(1)
}

// funcCheck adapts a function to services.Check.
type funcCheck struct {
	name validation.CheckName
	fn   func(ctx context.Context) (validation.Outcome, error)
}

func (c funcCheck) Name() validation.CheckName { return c.name }

func (c funcCheck) Evaluate(ctx context.Context, _ services.CheckInput) (validation.Outcome, error) {
	return c.fn(ctx)
}
