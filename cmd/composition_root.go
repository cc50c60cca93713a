package cmd

import (
	"io"
	"log/slog"
	"strings"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/checks"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/idgen"

	"go.opentelemetry.io/otel"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	closers    []io.Closer
	metrics    *metrics.Prometheus
	pipeline   *services.ValidationPipeline
	ids        *idgen.Generator
	locks      *commands.Locks
}

// NewCompositionRoot wires the engine. A nil gormDB selects the in-memory store.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	ids, err := idgen.NewGenerator(cfg.NodeID)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.NewPrometheus(),
		ids:     ids,
		locks:   commands.NewLocks(),
	}

	if cfg.KafkaHost != "" {
		publisher := kafka.NewPublisher(strings.Split(cfg.KafkaHost, ","), cfg.KafkaOrderChangedTopic, logger)
		c.publisher = publisher
		c.closers = append(c.closers, publisher)
	} else {
		c.publisher = kafka.NewNopPublisher()
	}

	if gormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB, c.publisher)
	} else {
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore(c.publisher))
	}

	credit := checks.NewCreditBreaker(
		checks.NewThresholdCreditProvider(cfg.CreditThreshold, checks.WithMinCreditScore(cfg.CreditMinScore)),
		checks.DefaultBreakerConfig("credit-check"),
		logger,
	)
	compliance := checks.NewComplianceBreaker(
		checks.NewRestrictedDestinationProvider(cfg.ComplianceRestricted,
			checks.WithScreenedPriorities(cfg.CompliancePriorities...)),
		checks.DefaultBreakerConfig("compliance-check"),
		logger,
	)
	c.pipeline = services.NewValidationPipeline(
		cfg.CheckTimeout,
		services.StandardChecks(credit, compliance),
		services.WithTracer(otel.Tracer("fulfillment/validation")),
		services.WithMetrics(c.metrics),
	)

	return c, nil
}

func (c *CompositionRoot) Metrics() *metrics.Prometheus {
	return c.metrics
}

// Close releases the event publisher.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) uows() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) inventoryUoWs() commands.InventoryUoWFactory {
	return FuncInventoryUoWFactory(func() commands.InventoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) readers() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uows(), c.ids)
}

func (c *CompositionRoot) CreateValidateOrderCommandHandler() commands.ValidateOrderCommandHandler {
	return commands.NewValidateOrderCommandHandler(c.uows(), c.pipeline, c.locks, c.metrics)
}

func (c *CompositionRoot) CreateConfirmPickCommandHandler() commands.ConfirmPickCommandHandler {
	return commands.NewConfirmPickCommandHandler(c.uows(), c.locks, c.metrics)
}

func (c *CompositionRoot) CreateTogglePackItemCommandHandler() commands.TogglePackItemCommandHandler {
	return commands.NewTogglePackItemCommandHandler(c.uows(), c.locks)
}

func (c *CompositionRoot) CreateFinalizeShipmentCommandHandler() commands.FinalizeShipmentCommandHandler {
	return commands.NewFinalizeShipmentCommandHandler(c.uows(), c.locks, c.metrics)
}

func (c *CompositionRoot) CreateIssueInvoiceCommandHandler() commands.IssueInvoiceCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewIssueInvoiceCommandHandler(f, c.locks)
}

func (c *CompositionRoot) CreateReceiveGoodsCommandHandler() commands.ReceiveGoodsCommandHandler {
	return commands.NewReceiveGoodsCommandHandler(c.uows(), c.ids)
}

func (c *CompositionRoot) CreateConfirmPutawayCommandHandler() commands.ConfirmPutawayCommandHandler {
	var f commands.TaskUoWFactory = FuncTaskUoWFactory(func() commands.TaskUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPutawayCommandHandler(f)
}

func (c *CompositionRoot) CreateRegisterStockItemCommandHandler() commands.RegisterStockItemCommandHandler {
	return commands.NewRegisterStockItemCommandHandler(c.inventoryUoWs())
}

func (c *CompositionRoot) CreateReleaseStockCommandHandler() commands.ReleaseStockCommandHandler {
	return commands.NewReleaseStockCommandHandler(c.inventoryUoWs())
}

func (c *CompositionRoot) CreateUpdateBatchComplianceCommandHandler() commands.UpdateBatchComplianceCommandHandler {
	return commands.NewUpdateBatchComplianceCommandHandler(c.inventoryUoWs())
}

func (c *CompositionRoot) CreateCreatePurchaseOrderCommandHandler() commands.CreatePurchaseOrderCommandHandler {
	var f commands.PurchaseOrderUoWFactory = FuncPurchaseOrderUoWFactory(func() commands.PurchaseOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreatePurchaseOrderCommandHandler(f, c.ids)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetStockLevelsQueryHandler() queries.GetStockLevelsQueryHandler {
	return queries.NewGetStockLevelsQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetPickingTasksQueryHandler() queries.GetPickingTasksQueryHandler {
	return queries.NewGetPickingTasksQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetPutawayTasksQueryHandler() queries.GetPutawayTasksQueryHandler {
	return queries.NewGetPutawayTasksQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateGetPackingReadyOrdersQueryHandler() queries.GetPackingReadyOrdersQueryHandler {
	return queries.NewGetPackingReadyOrdersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateListPurchaseOrdersQueryHandler() queries.ListPurchaseOrdersQueryHandler {
	return queries.NewListPurchaseOrdersQueryHandler(c.readers())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		ValidateOrder:         c.CreateValidateOrderCommandHandler(),
		ConfirmPick:           c.CreateConfirmPickCommandHandler(),
		TogglePackItem:        c.CreateTogglePackItemCommandHandler(),
		FinalizeShipment:      c.CreateFinalizeShipmentCommandHandler(),
		IssueInvoice:          c.CreateIssueInvoiceCommandHandler(),
		ReceiveGoods:          c.CreateReceiveGoodsCommandHandler(),
		ConfirmPutaway:        c.CreateConfirmPutawayCommandHandler(),
		RegisterStockItem:     c.CreateRegisterStockItemCommandHandler(),
		ReleaseStock:          c.CreateReleaseStockCommandHandler(),
		UpdateBatchCompliance: c.CreateUpdateBatchComplianceCommandHandler(),
		CreatePurchaseOrder:   c.CreateCreatePurchaseOrderCommandHandler(),

		GetOrder:              c.CreateGetOrderQueryHandler(),
		ListOrders:            c.CreateListOrdersQueryHandler(),
		GetStockLevels:        c.CreateGetStockLevelsQueryHandler(),
		GetPickingTasks:       c.CreateGetPickingTasksQueryHandler(),
		GetPutawayTasks:       c.CreateGetPutawayTasksQueryHandler(),
		GetPackingReadyOrders: c.CreateGetPackingReadyOrdersQueryHandler(),
		ListPurchaseOrders:    c.CreateListPurchaseOrdersQueryHandler(),
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateGetStockLevelsQueryHandler(),
		c.metrics,
		jobs.Schedules{Audit: c.cfg.AuditSchedule, Replenishment: c.cfg.ReplenishmentSchedule},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncInventoryUoWFactory func() commands.InventoryUoW

func (f FuncInventoryUoWFactory) Create() commands.InventoryUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTaskUoWFactory func() commands.TaskUoW

func (f FuncTaskUoWFactory) Create() commands.TaskUoW {
	return f()
}

type FuncPurchaseOrderUoWFactory func() commands.PurchaseOrderUoW

func (f FuncPurchaseOrderUoWFactory) Create() commands.PurchaseOrderUoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}
