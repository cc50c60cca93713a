package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/checks"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/metrics"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/idgen"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
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

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.StatusChanged
}

func (p *recordingPublisher) Publish(_ context.Context, events ...order.StatusChanged) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
}

func (p *recordingPublisher) transitions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.From.String()+"->"+e.To.String())
	}
	return out
}

type ServerTestSuite struct {
	suite.Suite
	e         *echo.Echo
	publisher *recordingPublisher
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	s.publisher = &recordingPublisher{}
	factory := memory.NewUnitOfWorkFactory(memory.NewStore(s.publisher))
	ids, err := idgen.NewGenerator(1)
	s.Require().NoError(err)

	prom := metrics.NewPrometheus()
	credit := checks.NewThresholdCreditProvider(checks.DefaultCreditThreshold,
		checks.WithCustomerLimit("Tight Budget Ltd", decimal.NewFromInt(100)),
		checks.WithCustomerScore("Tight Budget Ltd", 0.1))
	compliance := checks.NewRestrictedDestinationProvider([]string{"Pyongyang"})
	pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(credit, compliance),
		services.WithMetrics(prom))
	locks := commands.NewLocks()

	uows := uowFactoryFunc(func() commands.UoW { return factory.Create() })
	inventoryUoWs := inventoryUoWFactoryFunc(func() commands.InventoryUoW { return factory.Create() })
	readers := readerFactoryFunc(func() queries.Reader { return factory.Create() })

	server := httpin.NewServer(httpin.Handlers{
		CreateOrder:           commands.NewCreateOrderCommandHandler(uows, ids),
		ValidateOrder:         commands.NewValidateOrderCommandHandler(uows, pipeline, locks, prom),
		ConfirmPick:           commands.NewConfirmPickCommandHandler(uows, locks, prom),
		TogglePackItem:        commands.NewTogglePackItemCommandHandler(uows, locks),
		FinalizeShipment:      commands.NewFinalizeShipmentCommandHandler(uows, locks, prom),
		IssueInvoice:          commands.NewIssueInvoiceCommandHandler(orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() }), locks),
		ReceiveGoods:          commands.NewReceiveGoodsCommandHandler(uows, ids),
		ConfirmPutaway:        commands.NewConfirmPutawayCommandHandler(taskUoWFactoryFunc(func() commands.TaskUoW { return factory.Create() })),
		RegisterStockItem:     commands.NewRegisterStockItemCommandHandler(inventoryUoWs),
		ReleaseStock:          commands.NewReleaseStockCommandHandler(inventoryUoWs),
		UpdateBatchCompliance: commands.NewUpdateBatchComplianceCommandHandler(inventoryUoWs),
		CreatePurchaseOrder:   commands.NewCreatePurchaseOrderCommandHandler(purchaseOrderUoWFactoryFunc(func() commands.PurchaseOrderUoW { return factory.Create() }), ids),

		GetOrder:              queries.NewGetOrderQueryHandler(readers),
		ListOrders:            queries.NewListOrdersQueryHandler(readers),
		GetStockLevels:        queries.NewGetStockLevelsQueryHandler(readers),
		GetPickingTasks:       queries.NewGetPickingTasksQueryHandler(readers),
		GetPutawayTasks:       queries.NewGetPutawayTasksQueryHandler(readers),
		GetPackingReadyOrders: queries.NewGetPackingReadyOrdersQueryHandler(readers),
		ListPurchaseOrders:    queries.NewListPurchaseOrdersQueryHandler(readers),
	})

	s.e, err = httpin.NewRouter(server, prom)
	s.Require().NoError(err)
}

func (s *ServerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, dest any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func (s *ServerTestSuite) registerStock(sku, location string, onHand int) {
	rec := s.do(http.MethodPost, "/api/v1/inventory", servers.NewStockItem{
		Sku:          sku,
		Name:         "Item " + sku,
		Location:     location,
		ReorderPoint: 5,
		UnitPrice:    "12.50",
		OnHand:       onHand,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) createOrder(customer, address string, lines ...servers.NewOrderLine) servers.CreatedOrder {
	return s.createOrderWithPriority("High", customer, address, lines...)
}

func (s *ServerTestSuite) createOrderWithPriority(
	priority, customer, address string,
	lines ...servers.NewOrderLine,
) servers.CreatedOrder {
	rec := s.do(http.MethodPost, "/api/v1/orders", servers.NewOrder{
		Customer:        customer,
		Priority:        priority,
		ShippingAddress: address,
		Lines:           lines,
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var created servers.CreatedOrder
	s.decode(rec, &created)
	return created
}

func price(p string) *string {
	return &p
}

func (s *ServerTestSuite) Test_Health() {
	rec := s.do(http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("Healthy", rec.Body.String())
}

func (s *ServerTestSuite) Test_UndocumentedRoutesBypassValidation() {
	for _, path := range []string{"/health", "/metrics", "/swagger/index.html"} {
		rec := s.do(http.MethodGet, path, nil)

		s.Equal(http.StatusOK, rec.Code, path)
	}
}

func (s *ServerTestSuite) Test_FullFulfillmentFlow() {
	// Given
	s.registerStock("SKU-1", "Zone A-12", 20)
	s.registerStock("SKU-2", "Zone B-03", 10)
	created := s.createOrder("PT Sentosa", "Jakarta",
		servers.NewOrderLine{Sku: "SKU-1", Quantity: 2, UnitPrice: price("1000")},
		servers.NewOrderLine{Sku: "SKU-2", Quantity: 1, UnitPrice: price("500")},
	)
	orderPath := "/api/v1/orders/" + created.OrderId.String()

	// When
	rec := s.do(http.MethodPost, orderPath+"/validate", nil)

	// Then
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var result servers.ValidationResult
	s.decode(rec, &result)
	s.Equal("WarehousePick", result.Status)
	s.Len(result.Checks, 3)
	for _, c := range result.Checks {
		s.Equal("Pass", c.Verdict, c.Check)
	}

	// When
	rec = s.do(http.MethodGet, "/api/v1/picking/tasks?strategy=Zone", nil)

	// Then
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var tasks servers.PickingTasks
	s.decode(rec, &tasks)
	s.Equal(2, tasks.Pending)
	s.Len(tasks.Groups, 2)

	for _, g := range tasks.Groups {
		for _, t := range g.Tasks {
			rec = s.do(http.MethodPost, "/api/v1/picking/tasks/"+t.Id+"/confirm",
				servers.PickScan{ScannedLocation: t.Location, ScannedSku: t.Sku})
			s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		}
	}

	rec = s.do(http.MethodGet, "/api/v1/packing/orders", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var packing []servers.PackingOrder
	s.decode(rec, &packing)
	s.Require().Len(packing, 1)
	s.ElementsMatch([]string{"SKU-1", "SKU-2"}, packing[0].MissingSkus)

	for _, sku := range []string{"SKU-1", "SKU-2"} {
		rec = s.do(http.MethodPost, orderPath+"/pack-items", servers.PackItem{Sku: sku})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, orderPath+"/shipment", nil)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())
	rec = s.do(http.MethodPost, orderPath+"/invoice", nil)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	// Then
	rec = s.do(http.MethodGet, orderPath, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var view servers.Order
	s.decode(rec, &view)
	s.Equal("Invoiced", view.Status)
	s.Equal("2500.00", view.Total)

	rec = s.do(http.MethodGet, "/api/v1/inventory", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var levels servers.StockLevels
	s.decode(rec, &levels)
	s.Equal(27, levels.Summary.TotalOnHand)
	s.Equal(0, levels.Summary.TotalAllocated)

	s.Equal([]string{
		"Confirmed->WarehousePick",
		"WarehousePick->Shipped",
		"Shipped->Invoiced",
	}, s.publisher.transitions())
}

func (s *ServerTestSuite) Test_ValidateOrder() {
	s.Run("should return every shortfall with the check report", func() {
		// Given
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 1)
		created := s.createOrder("PT Sentosa", "Jakarta",
			servers.NewOrderLine{Sku: "SKU-1", Quantity: 5},
			servers.NewOrderLine{Sku: "SKU-404", Quantity: 1},
		)

		// When
		rec := s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/validate", nil)

		// Then
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Len(body.Reasons, 2)
		s.Equal("InventoryCheck", body.Details["check"])
		s.Contains(body.Details, "checks")
	})

	s.Run("should reject a customer over the credit limit", func() {
		// Given
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 10)
		created := s.createOrder("Tight Budget Ltd", "Jakarta",
			servers.NewOrderLine{Sku: "SKU-1", Quantity: 1, UnitPrice: price("500")})

		// When
		rec := s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/validate", nil)

		// Then
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Equal("CreditCheck", body.Details["check"])
		s.Empty(s.publisher.transitions())
	})

	s.Run("should reject a Critical order to a restricted destination", func() {
		// Given
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 10)
		created := s.createOrderWithPriority("Critical", "PT Sentosa", "Pyongyang",
			servers.NewOrderLine{Sku: "SKU-1", Quantity: 1})

		// When
		rec := s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/validate", nil)

		// Then
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Equal("ComplianceCheck", body.Details["check"])
	})
}

func (s *ServerTestSuite) Test_Errors() {
	s.Run("unknown_order_is_not_found", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders/6f1c2e0a-3a5b-4a8e-9a57-1c5d0f3b2a11", nil)

		s.Equal(http.StatusNotFound, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Equal(http.StatusNotFound, body.Code)
	})

	s.Run("malformed_order_id_is_bad_request", func() {
		rec := s.do(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)

		s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	s.Run("order_without_lines_is_bad_request", func() {
		rec := s.do(http.MethodPost, "/api/v1/orders", map[string]any{
			"customer":        "PT Sentosa",
			"priority":        "Normal",
			"shippingAddress": "Jakarta",
			"lines":           []any{},
		})

		s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	})

	s.Run("duplicate_stock_item_is_conflict", func() {
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 1)

		rec := s.do(http.MethodPost, "/api/v1/inventory", servers.NewStockItem{
			Sku: "SKU-1", Name: "Again", Location: "Zone A-12", UnitPrice: "1.00",
		})

		s.Equal(http.StatusConflict, rec.Code, rec.Body.String())
	})

	s.Run("wrong_scan_is_unprocessable_with_details", func() {
		// Given
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 10)
		created := s.createOrder("PT Sentosa", "Jakarta", servers.NewOrderLine{Sku: "SKU-1", Quantity: 1})
		s.Require().Equal(http.StatusOK,
			s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/validate", nil).Code)

		// When
		rec := s.do(http.MethodPost, "/api/v1/picking/tasks/"+created.OrderId.String()+"-item-0/confirm",
			servers.PickScan{ScannedLocation: "Zone B-01", ScannedSku: "SKU-1"})

		// Then
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Equal("Zone A-12", body.Details["expectedLocation"])
		s.Equal("Zone B-01", body.Details["scannedLocation"])
	})

	s.Run("shipping_before_packing_is_unprocessable", func() {
		// Given
		s.SetupTest()
		s.registerStock("SKU-1", "Zone A-12", 10)
		created := s.createOrder("PT Sentosa", "Jakarta", servers.NewOrderLine{Sku: "SKU-1", Quantity: 1})
		s.Require().Equal(http.StatusOK,
			s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/validate", nil).Code)

		// When
		rec := s.do(http.MethodPost, "/api/v1/orders/"+created.OrderId.String()+"/shipment", nil)

		// Then
		s.Require().Equal(http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		var body servers.Error
		s.decode(rec, &body)
		s.Contains(body.Details, "unpickedLines")
	})
}

func (s *ServerTestSuite) Test_Receiving() {
	// Given
	s.registerStock("SKU-1", "Zone A-12", 0)
	rec := s.do(http.MethodPost, "/api/v1/purchase-orders", servers.NewPurchaseOrder{
		Supplier:     "Acme Supplies",
		ExpectedDate: openapi_types.Date{Time: time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)},
		Lines:        []servers.NewPurchaseOrderLine{{Sku: "SKU-1", ExpectedQty: 10}},
	})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var po servers.CreatedPurchaseOrder
	s.decode(rec, &po)

	// When
	rec = s.do(http.MethodPost, "/api/v1/inventory/receipts", servers.Receipt{
		Sku:                 "SKU-1",
		Quantity:            4,
		BatchNumber:         "B-001",
		LotNumber:           "L-77",
		PurchaseOrderNumber: po.Number,
	})

	// Then
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var receipt servers.ReceiptResult
	s.decode(rec, &receipt)
	s.NotEmpty(receipt.BatchId)

	rec = s.do(http.MethodGet, "/api/v1/putaway/tasks", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var putaways []servers.PutawayTask
	s.decode(rec, &putaways)
	s.Require().Len(putaways, 1)
	s.Equal(receipt.PutawayTaskId.String(), putaways[0].Id)
	s.Equal("Zone A-12", putaways[0].Suggested)

	rec = s.do(http.MethodPost, "/api/v1/putaway/tasks/"+receipt.PutawayTaskId.String()+"/confirm", nil)
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPut, "/api/v1/inventory/SKU-1/batches/"+receipt.BatchId+"/compliance",
		servers.BatchCompliance{Status: "Compliant"})
	s.Require().Equal(http.StatusNoContent, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/inventory", nil)
	var levels servers.StockLevels
	s.decode(rec, &levels)
	s.Require().Len(levels.Items, 1)
	s.Equal(4, levels.Items[0].OnHand)
	s.Require().Len(levels.Items[0].Batches, 1)
	s.Equal("Compliant", levels.Items[0].Batches[0].Compliance)

	rec = s.do(http.MethodGet, "/api/v1/purchase-orders", nil)
	var pos []servers.PurchaseOrder
	s.decode(rec, &pos)
	s.Require().Len(pos, 1)
	s.Equal(4, pos[0].Lines[0].ReceivedQty)
}

func (s *ServerTestSuite) Test_Metrics() {
	s.do(http.MethodGet, "/health", nil)

	rec := s.do(http.MethodGet, "/metrics", nil)

	s.Equal(http.StatusOK, rec.Code)
	s.True(strings.Contains(rec.Body.String(), `fulfillment_http_requests_total{method="GET",path="/health",status="200"} 1`),
		rec.Body.String())
}
