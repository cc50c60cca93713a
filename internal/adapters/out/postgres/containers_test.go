package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// databaseSuite starts one PostgreSQL container per suite and empties every table before each test.
type databaseSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *databaseSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres_adapter.Migrate(db))
}

func (s *databaseSuite) SetupTest() {
	err := s.db.Exec(`TRUNCATE TABLE stock_items, batches, orders, order_lines, putaway_tasks, picks,
		packing_sessions, purchase_orders, purchase_order_lines`).Error
	s.Require().NoError(err)
}

func (s *databaseSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.StatusChanged
}

func (p *recordingPublisher) Publish(_ context.Context, events ...order.StatusChanged) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) Events() []order.StatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.StatusChanged(nil), p.events...)
}

func (p *recordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

func newItem(t *testing.T, sku string, onHand int) *inventory.StockItem {
	t.Helper()
	item, err := inventory.NewStockItem(sku, "Item "+sku, kernel.MustLocation("Zone A-12"), 10,
		decimal.RequireFromString("12.50"), onHand)
	require.NoError(t, err)
	return item
}

func newOrder(t *testing.T, number string, priority order.Priority, createdAt time.Time, skus ...string) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(skus))
	for i, sku := range skus {
		l, err := order.NewLine(sku, i+1, decimal.NewFromInt(1000))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), number, "PT Sentosa", priority, "Jl. Sudirman 1, Jakarta", lines, createdAt)
	require.NoError(t, err)
	return o
}
