package commands_test

import (
	"context"
	"errors"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

var errNotMocked = errors.New("not implemented in mock")

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Add(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInventoryRepository) Update(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockInventoryRepository) Get(ctx context.Context, sku string) (*inventory.StockItem, error) {
	args := m.Called(ctx, sku)
	item, _ := args.Get(0).(*inventory.StockItem)
	return item, args.Error(1)
}
func (m *MockInventoryRepository) GetForUpdate(ctx context.Context, sku string) (*inventory.StockItem, error) {
	args := m.Called(ctx, sku)
	item, _ := args.Get(0).(*inventory.StockItem)
	return item, args.Error(1)
}
func (m *MockInventoryRepository) List(_ context.Context) ([]*inventory.StockItem, error) {
	return nil, errNotMocked
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}
func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) ListByStatus(_ context.Context, _ ...order.Status) ([]*order.Order, error) {
	return nil, errNotMocked
}

type MockTaskRepository struct{ mock.Mock }

func (m *MockTaskRepository) AddPutaway(ctx context.Context, task *warehouse.PutawayTask) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}
func (m *MockTaskRepository) GetPutaway(ctx context.Context, id kernel.UUID) (*warehouse.PutawayTask, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*warehouse.PutawayTask)
	return task, args.Error(1)
}
func (m *MockTaskRepository) DeletePutaway(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockTaskRepository) ListPutaways(_ context.Context) ([]*warehouse.PutawayTask, error) {
	return nil, errNotMocked
}
func (m *MockTaskRepository) MarkPicked(_ context.Context, _ warehouse.LineRef) error {
	return errNotMocked
}
func (m *MockTaskRepository) PickState(_ context.Context, _ ...kernel.UUID) (warehouse.PickState, error) {
	return warehouse.PickState{}, errNotMocked
}
func (m *MockTaskRepository) ClearPicks(_ context.Context, _ kernel.UUID) error {
	return errNotMocked
}
func (m *MockTaskRepository) GetPackingSession(_ context.Context, _ kernel.UUID) (*warehouse.PackingSession, error) {
	return nil, errNotMocked
}
func (m *MockTaskRepository) SavePackingSession(_ context.Context, _ *warehouse.PackingSession) error {
	return errNotMocked
}
func (m *MockTaskRepository) DeletePackingSession(_ context.Context, _ kernel.UUID) error {
	return errNotMocked
}

// MockUoW satisfies every narrowed unit of work interface.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}
func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockUoW) TaskRepository() ports.TaskRepository {
	args := m.Called()
	return args.Get(0).(ports.TaskRepository)
}
func (m *MockUoW) PurchaseOrderRepository() ports.PurchaseOrderRepository {
	args := m.Called()
	return args.Get(0).(ports.PurchaseOrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockInventoryUoWFactory struct{ mock.Mock }

func (m *MockInventoryUoWFactory) Create() commands.InventoryUoW {
	args := m.Called()
	return args.Get(0).(commands.InventoryUoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockTaskUoWFactory struct{ mock.Mock }

func (m *MockTaskUoWFactory) Create() commands.TaskUoW {
	args := m.Called()
	return args.Get(0).(commands.TaskUoW)
}

type fixedIDs struct{}

func (fixedIDs) OrderNumber() string         { return "SO-1" }
func (fixedIDs) BatchID() string             { return "BATCH-1" }
func (fixedIDs) PurchaseOrderNumber() string { return "PO-1" }

