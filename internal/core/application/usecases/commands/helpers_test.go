package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/idgen"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type inventoryUoWFactoryFunc func() commands.InventoryUoW

func (f inventoryUoWFactoryFunc) Create() commands.InventoryUoW { return f() }

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type taskUoWFactoryFunc func() commands.TaskUoW

func (f taskUoWFactoryFunc) Create() commands.TaskUoW { return f() }

type purchaseOrderUoWFactoryFunc func() commands.PurchaseOrderUoW

func (f purchaseOrderUoWFactoryFunc) Create() commands.PurchaseOrderUoW { return f() }

type readerFactoryFunc func() queries.Reader

func (f readerFactoryFunc) Create() queries.Reader { return f() }

// switchProvider answers every credit and compliance request with the current outcome.
type switchProvider struct {
	mu      sync.Mutex
	outcome validation.Outcome
	err     error
	calls   int
}

func (p *switchProvider) set(outcome validation.Outcome, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcome, p.err = outcome, err
}

func (p *switchProvider) answer() (validation.Outcome, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.outcome, p.err
}

func (p *switchProvider) CheckCredit(context.Context, string, decimal.Decimal) (validation.Outcome, error) {
	return p.answer()
}

func (p *switchProvider) CheckCompliance(context.Context, string, order.Priority, string) (validation.Outcome, error) {
	return p.answer()
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

func (p *recordingPublisher) For(id kernel.UUID) []order.StatusChanged {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []order.StatusChanged
	for _, e := range p.events {
		if e.OrderID == id {
			out = append(out, e)
		}
	}
	return out
}

// engine wires every handler over one in-memory store.
type engine struct {
	t          *testing.T
	factory    *memory.UnitOfWorkFactory
	publisher  *recordingPublisher
	credit     *switchProvider
	compliance *switchProvider
	locks      *commands.Locks

	createOrder      commands.CreateOrderCommandHandler
	validateOrder    commands.ValidateOrderCommandHandler
	receiveGoods     commands.ReceiveGoodsCommandHandler
	confirmPutaway   commands.ConfirmPutawayCommandHandler
	confirmPick      commands.ConfirmPickCommandHandler
	togglePackItem   commands.TogglePackItemCommandHandler
	finalizeShipment commands.FinalizeShipmentCommandHandler
	issueInvoice     commands.IssueInvoiceCommandHandler
	releaseStock     commands.ReleaseStockCommandHandler
	batchCompliance  commands.UpdateBatchComplianceCommandHandler
	registerItem     commands.RegisterStockItemCommandHandler
	createPO         commands.CreatePurchaseOrderCommandHandler

	pickingTasks queries.GetPickingTasksQueryHandler
	putawayTasks queries.GetPutawayTasksQueryHandler
	stockLevels  queries.GetStockLevelsQueryHandler
	getOrder     queries.GetOrderQueryHandler
	packingReady queries.GetPackingReadyOrdersQueryHandler
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	publisher := &recordingPublisher{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(publisher))
	ids, err := idgen.NewGenerator(1)
	require.NoError(t, err)

	credit := &switchProvider{outcome: validation.Passed()}
	compliance := &switchProvider{outcome: validation.Passed()}
	pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(credit, compliance))
	locks := commands.NewLocks()
	metrics := ports.NopMetrics{}

	uows := uowFactoryFunc(func() commands.UoW { return factory.Create() })
	readers := readerFactoryFunc(func() queries.Reader { return factory.Create() })

	return &engine{
		t:          t,
		factory:    factory,
		publisher:  publisher,
		credit:     credit,
		compliance: compliance,
		locks:      locks,

		createOrder:      commands.NewCreateOrderCommandHandler(uows, ids),
		validateOrder:    commands.NewValidateOrderCommandHandler(uows, pipeline, locks, metrics),
		receiveGoods:     commands.NewReceiveGoodsCommandHandler(uows, ids),
		confirmPutaway:   commands.NewConfirmPutawayCommandHandler(taskUoWFactoryFunc(func() commands.TaskUoW { return factory.Create() })),
		confirmPick:      commands.NewConfirmPickCommandHandler(uows, locks, metrics),
		togglePackItem:   commands.NewTogglePackItemCommandHandler(uows, locks),
		finalizeShipment: commands.NewFinalizeShipmentCommandHandler(uows, locks, metrics),
		issueInvoice:     commands.NewIssueInvoiceCommandHandler(orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() }), locks),
		releaseStock:     commands.NewReleaseStockCommandHandler(inventoryUoWFactoryFunc(func() commands.InventoryUoW { return factory.Create() })),
		batchCompliance:  commands.NewUpdateBatchComplianceCommandHandler(inventoryUoWFactoryFunc(func() commands.InventoryUoW { return factory.Create() })),
		registerItem:     commands.NewRegisterStockItemCommandHandler(inventoryUoWFactoryFunc(func() commands.InventoryUoW { return factory.Create() })),
		createPO:         commands.NewCreatePurchaseOrderCommandHandler(purchaseOrderUoWFactoryFunc(func() commands.PurchaseOrderUoW { return factory.Create() }), ids),

		pickingTasks: queries.NewGetPickingTasksQueryHandler(readers),
		putawayTasks: queries.NewGetPutawayTasksQueryHandler(readers),
		stockLevels:  queries.NewGetStockLevelsQueryHandler(readers),
		getOrder:     queries.NewGetOrderQueryHandler(readers),
		packingReady: queries.NewGetPackingReadyOrdersQueryHandler(readers),
	}
}

// stock registers a SKU at location with onHand units and then reserves allocated of them directly.
func (e *engine) stock(sku, location string, onHand, allocated int) {
	e.t.Helper()
	ctx := e.t.Context()

	cmd, err := commands.NewRegisterStockItemCommand(sku, "Item "+sku, kernel.MustLocation(location), 10,
		decimal.NewFromInt(1000), onHand)
	require.NoError(e.t, err)
	require.NoError(e.t, e.registerItem.Handle(ctx, cmd))

	if allocated == 0 {
		return
	}
	uow := e.factory.Create()
	require.NoError(e.t, uow.Begin(ctx))
	item, err := uow.InventoryRepository().GetForUpdate(ctx, sku)
	require.NoError(e.t, err)
	require.NoError(e.t, item.Reserve(allocated))
	require.NoError(e.t, uow.InventoryRepository().Update(ctx, item))
	require.NoError(e.t, uow.Commit(ctx))
}

func (e *engine) item(sku string) *inventory.StockItem {
	e.t.Helper()
	item, err := e.factory.Create().InventoryRepository().Get(e.t.Context(), sku)
	require.NoError(e.t, err)
	return item
}

func (e *engine) order(id kernel.UUID) *order.Order {
	e.t.Helper()
	o, err := e.factory.Create().OrderRepository().Get(e.t.Context(), id)
	require.NoError(e.t, err)
	return o
}

type line struct {
	sku string
	qty int
}

func (e *engine) placeOrder(priority order.Priority, lines ...line) kernel.UUID {
	e.t.Helper()
	inputs := make([]commands.OrderLineInput, 0, len(lines))
	for _, l := range lines {
		inputs = append(inputs, commands.OrderLineInput{SKU: l.sku, Quantity: l.qty})
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "PT Sentosa", priority, "Jakarta", inputs)
	require.NoError(e.t, err)
	_, err = e.createOrder.Handle(e.t.Context(), cmd)
	require.NoError(e.t, err)
	return id
}

func (e *engine) validate(id kernel.UUID) (commands.ValidateOrderResult, error) {
	e.t.Helper()
	cmd, err := commands.NewValidateOrderCommand(id)
	require.NoError(e.t, err)
	return e.validateOrder.Handle(e.t.Context(), cmd)
}

func (e *engine) pick(taskID, location, sku string) (commands.ConfirmPickResult, error) {
	e.t.Helper()
	cmd, err := commands.NewConfirmPickCommand(taskID, location, sku)
	require.NoError(e.t, err)
	return e.confirmPick.Handle(e.t.Context(), cmd)
}

func (e *engine) toggle(id kernel.UUID, sku string) (commands.TogglePackItemResult, error) {
	e.t.Helper()
	cmd, err := commands.NewTogglePackItemCommand(id, sku)
	require.NoError(e.t, err)
	return e.togglePackItem.Handle(e.t.Context(), cmd)
}

func (e *engine) finalize(id kernel.UUID) error {
	e.t.Helper()
	cmd, err := commands.NewFinalizeShipmentCommand(id)
	require.NoError(e.t, err)
	return e.finalizeShipment.Handle(e.t.Context(), cmd)
}

func (e *engine) tasks(strategy string) queries.PickingTasksView {
	e.t.Helper()
	s, err := warehouse.ParseStrategy(strategy)
	require.NoError(e.t, err)
	q, err := queries.NewGetPickingTasksQuery(s)
	require.NoError(e.t, err)
	view, err := e.pickingTasks.Handle(e.t.Context(), q)
	require.NoError(e.t, err)
	return view
}

func (e *engine) taskIDs() []string {
	e.t.Helper()
	var ids []string
	for _, g := range e.tasks("Zone").Groups {
		for _, task := range g.Tasks {
			ids = append(ids, task.ID)
		}
	}
	return ids
}

// pickAll confirms every pending task with a correct scan.
func (e *engine) pickAll() {
	e.t.Helper()
	for _, g := range e.tasks("Zone").Groups {
		for _, task := range g.Tasks {
			_, err := e.pick(task.ID, task.Location, task.SKU)
			require.NoError(e.t, err)
		}
	}
}
