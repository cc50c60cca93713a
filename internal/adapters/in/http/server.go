package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

var _ servers.ServerInterface = (*Server)(nil)

// Handlers groups the use cases the HTTP server exposes.
type Handlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	ValidateOrder         commands.ValidateOrderCommandHandler
	ConfirmPick           commands.ConfirmPickCommandHandler
	TogglePackItem        commands.TogglePackItemCommandHandler
	FinalizeShipment      commands.FinalizeShipmentCommandHandler
	IssueInvoice          commands.IssueInvoiceCommandHandler
	ReceiveGoods          commands.ReceiveGoodsCommandHandler
	ConfirmPutaway        commands.ConfirmPutawayCommandHandler
	RegisterStockItem     commands.RegisterStockItemCommandHandler
	ReleaseStock          commands.ReleaseStockCommandHandler
	UpdateBatchCompliance commands.UpdateBatchComplianceCommandHandler
	CreatePurchaseOrder   commands.CreatePurchaseOrderCommandHandler

	GetOrder              queries.GetOrderQueryHandler
	ListOrders            queries.ListOrdersQueryHandler
	GetStockLevels        queries.GetStockLevelsQueryHandler
	GetPickingTasks       queries.GetPickingTasksQueryHandler
	GetPutawayTasks       queries.GetPutawayTasksQueryHandler
	GetPackingReadyOrders queries.GetPackingReadyOrdersQueryHandler
	ListPurchaseOrders    queries.ListPurchaseOrdersQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

func toKernelID(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

// bind decodes and validates the request body.
func bind(ctx echo.Context, dest any) error {
	if err := ctx.Bind(dest); err != nil {
		return err
	}
	return ctx.Validate(dest)
}

// GetStockLevels handles GET /api/v1/inventory.
func (s *Server) GetStockLevels(ctx echo.Context) error {
	view, err := s.h.GetStockLevels.Handle(ctx.Request().Context(), queries.NewGetStockLevelsQuery())
	if err != nil {
		return err
	}

	response := servers.StockLevels{
		Items: make([]servers.StockLevel, 0, len(view.Items)),
		Summary: servers.StockSummary{
			TotalOnHand:         view.Summary.TotalOnHand,
			TotalAllocated:      view.Summary.TotalAllocated,
			TotalAvailable:      view.Summary.TotalAvailable,
			ReplenishmentNeeded: view.Summary.ReplenishmentNeeded,
			StockOuts:           view.Summary.StockOuts,
			InvariantViolations: view.Summary.InvariantViolations,
		},
	}
	for _, item := range view.Items {
		batches := make([]servers.Batch, 0, len(item.Batches))
		for _, b := range item.Batches {
			batches = append(batches, servers.Batch{
				Id:          b.ID,
				BatchNumber: b.BatchNumber,
				LotNumber:   b.LotNumber,
				Expiry:      b.Expiry,
				Quantity:    b.Quantity,
				Compliance:  b.Compliance,
				ReceivedAt:  b.ReceivedAt,
			})
		}
		response.Items = append(response.Items, servers.StockLevel{
			Sku:                item.SKU,
			Name:               item.Name,
			Location:           item.Location,
			Zone:               item.Zone,
			OnHand:             item.OnHand,
			Allocated:          item.Allocated,
			Available:          item.Available,
			ReorderPoint:       item.ReorderPoint,
			UnitPrice:          item.UnitPrice.StringFixed(2),
			Level:              item.Level,
			NeedsReplenishment: item.NeedsReplenishment,
			InvariantViolation: item.InvariantViolation,
			Batches:            batches,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// RegisterStockItem handles POST /api/v1/inventory.
func (s *Server) RegisterStockItem(ctx echo.Context) error {
	var body servers.NewStockItem
	if err := bind(ctx, &body); err != nil {
		return err
	}

	price, err := decimal.NewFromString(body.UnitPrice)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice", err)
	}
	location, err := kernel.NewLocation(body.Location)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterStockItemCommand(body.Sku, body.Name, location, body.ReorderPoint, price, body.OnHand)
	if err != nil {
		return err
	}
	if err = s.h.RegisterStockItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReceiveGoods handles POST /api/v1/inventory/receipts.
func (s *Server) ReceiveGoods(ctx echo.Context) error {
	var body servers.Receipt
	if err := bind(ctx, &body); err != nil {
		return err
	}

	var expiry *time.Time
	if body.Expiry != nil {
		t := body.Expiry.Time
		expiry = &t
	}

	cmd, err := commands.NewReceiveGoodsCommand(body.Sku, body.Quantity, body.BatchNumber, body.LotNumber, expiry,
		body.PurchaseOrderNumber)
	if err != nil {
		return err
	}
	result, err := s.h.ReceiveGoods.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.ReceiptResult{
		BatchId:       result.BatchID,
		PutawayTaskId: result.PutawayTaskID.Bytes(),
	})
}

// UpdateBatchCompliance handles PUT /api/v1/inventory/{sku}/batches/{batchId}/compliance.
func (s *Server) UpdateBatchCompliance(ctx echo.Context, sku string, batchId string) error {
	var body servers.BatchCompliance
	if err := bind(ctx, &body); err != nil {
		return err
	}

	status, err := inventory.ParseComplianceStatus(body.Status)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateBatchComplianceCommand(sku, batchId, status)
	if err != nil {
		return err
	}
	if err = s.h.UpdateBatchCompliance.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseStock handles POST /api/v1/inventory/{sku}/release.
func (s *Server) ReleaseStock(ctx echo.Context, sku string) error {
	var body servers.Release
	if err := bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewReleaseStockCommand(sku, body.Quantity)
	if err != nil {
		return err
	}
	released, err := s.h.ReleaseStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.ReleaseResult{Released: released})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var statuses []order.Status
	if params.Status != nil {
		for _, raw := range *params.Status {
			status, err := order.ParseStatus(raw)
			if err != nil {
				return err
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewListOrdersQuery(statuses...)
	if err != nil {
		return err
	}
	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := make([]servers.Order, 0, len(views))
	for _, v := range views {
		response = append(response, toOrder(v))
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := bind(ctx, &body); err != nil {
		return err
	}

	priority, err := order.ParsePriority(body.Priority)
	if err != nil {
		return err
	}
	lines := make([]commands.OrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		price := decimal.Zero
		if l.UnitPrice != nil {
			if price, err = decimal.NewFromString(*l.UnitPrice); err != nil {
				return errs.NewValueIsInvalidErrorWithCause("unitPrice", err)
			}
		}
		lines = append(lines, commands.OrderLineInput{SKU: l.Sku, Quantity: l.Quantity, UnitPrice: price})
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.Customer, priority, body.ShippingAddress, lines)
	if err != nil {
		return err
	}
	result, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{
		OrderId: cmd.OrderID().Bytes(),
		Number:  result.Number,
	})
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, toOrder(view))
}

// IssueInvoice handles POST /api/v1/orders/{orderId}/invoice.
func (s *Server) IssueInvoice(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewIssueInvoiceCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.IssueInvoice.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TogglePackItem handles POST /api/v1/orders/{orderId}/pack-items.
func (s *Server) TogglePackItem(ctx echo.Context, orderId openapi_types.UUID) error {
	var body servers.PackItem
	if err := bind(ctx, &body); err != nil {
		return err
	}

	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewTogglePackItemCommand(id, body.Sku)
	if err != nil {
		return err
	}
	result, err := s.h.TogglePackItem.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.PackingState{
		Verified:    result.Verified,
		MissingSkus: nonNil(result.MissingSKUs),
	})
}

// FinalizeShipment handles POST /api/v1/orders/{orderId}/shipment.
func (s *Server) FinalizeShipment(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewFinalizeShipmentCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.FinalizeShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ValidateOrder handles POST /api/v1/orders/{orderId}/validate. A failed or
// undetermined check still returns the per-check report in the error details.
func (s *Server) ValidateOrder(ctx echo.Context, orderId openapi_types.UUID) error {
	id, err := toKernelID(orderId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewValidateOrderCommand(id)
	if err != nil {
		return err
	}

	result, err := s.h.ValidateOrder.Handle(ctx.Request().Context(), cmd)
	response := servers.ValidationResult{
		Status:           result.Status.String(),
		AlreadyValidated: result.AlreadyValidated,
		Checks:           make([]servers.CheckResult, 0, len(result.Report.Results)),
	}
	for _, r := range result.Report.Results {
		response.Checks = append(response.Checks, servers.CheckResult{
			Check:      string(r.Check),
			Verdict:    r.Verdict.String(),
			Reasons:    r.Reasons,
			DurationMs: r.Duration.Milliseconds(),
		})
	}

	if err != nil {
		if len(response.Checks) == 0 {
			return err
		}
		code, body := toHTTPError(err)
		if body.Details == nil {
			body.Details = map[string]any{}
		}
		body.Details["checks"] = response.Checks
		return ctx.JSON(code, body)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPackingReadyOrders handles GET /api/v1/packing/orders.
func (s *Server) GetPackingReadyOrders(ctx echo.Context) error {
	views, err := s.h.GetPackingReadyOrders.Handle(ctx.Request().Context(), queries.NewGetPackingReadyOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]servers.PackingOrder, 0, len(views))
	for _, v := range views {
		response = append(response, servers.PackingOrder{
			OrderId:      v.OrderID,
			OrderNumber:  v.OrderNumber,
			Customer:     v.Customer,
			Priority:     v.Priority,
			Skus:         nonNil(v.SKUs),
			VerifiedSkus: nonNil(v.VerifiedSKUs),
			MissingSkus:  nonNil(v.MissingSKUs),
			Complete:     v.Complete,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetPickingTasks handles GET /api/v1/picking/tasks.
func (s *Server) GetPickingTasks(ctx echo.Context, params servers.GetPickingTasksParams) error {
	strategy := warehouse.Wave
	if params.Strategy != nil {
		parsed, err := warehouse.ParseStrategy(*params.Strategy)
		if err != nil {
			return err
		}
		strategy = parsed
	}

	query, err := queries.NewGetPickingTasksQuery(strategy)
	if err != nil {
		return err
	}
	view, err := s.h.GetPickingTasks.Handle(ctx.Request().Context(), query)
	if err != nil {
		return err
	}

	response := servers.PickingTasks{
		Strategy: view.Strategy,
		Pending:  view.Pending,
		Groups:   make([]servers.TaskGroup, 0, len(view.Groups)),
	}
	for _, g := range view.Groups {
		tasks := make([]servers.PickingTask, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			tasks = append(tasks, servers.PickingTask{
				Id:          t.ID,
				OrderId:     t.OrderID,
				OrderNumber: t.OrderNumber,
				LineIndex:   t.LineIndex,
				Priority:    t.Priority,
				Sku:         t.SKU,
				Quantity:    t.Quantity,
				Location:    t.Location,
				Zone:        t.Zone,
				Status:      t.Status,
			})
		}
		response.Groups = append(response.Groups, servers.TaskGroup{
			Key:           g.Key,
			Title:         g.Title,
			TotalQuantity: g.TotalQuantity,
			Tasks:         tasks,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// ConfirmPick handles POST /api/v1/picking/tasks/{taskId}/confirm.
func (s *Server) ConfirmPick(ctx echo.Context, taskId string) error {
	var body servers.PickScan
	if err := bind(ctx, &body); err != nil {
		return err
	}

	cmd, err := commands.NewConfirmPickCommand(taskId, body.ScannedLocation, body.ScannedSku)
	if err != nil {
		return err
	}
	result, err := s.h.ConfirmPick.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, servers.PickConfirmation{
		TaskId:        result.Task.ID(),
		AlreadyPicked: result.AlreadyPicked,
		PackEligible:  result.PackEligible,
	})
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders.
func (s *Server) ListPurchaseOrders(ctx echo.Context) error {
	views, err := s.h.ListPurchaseOrders.Handle(ctx.Request().Context(), queries.NewListPurchaseOrdersQuery())
	if err != nil {
		return err
	}

	response := make([]servers.PurchaseOrder, 0, len(views))
	for _, v := range views {
		lines := make([]servers.PurchaseOrderLine, 0, len(v.Lines))
		for _, l := range v.Lines {
			lines = append(lines, servers.PurchaseOrderLine{
				Sku:         l.SKU,
				ExpectedQty: l.ExpectedQty,
				ReceivedQty: l.ReceivedQty,
				Status:      l.Status,
			})
		}
		response = append(response, servers.PurchaseOrder{
			Id:           v.ID,
			Number:       v.Number,
			Supplier:     v.Supplier,
			ExpectedDate: v.ExpectedDate,
			Status:       v.Status,
			Lines:        lines,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders.
func (s *Server) CreatePurchaseOrder(ctx echo.Context) error {
	var body servers.NewPurchaseOrder
	if err := bind(ctx, &body); err != nil {
		return err
	}

	lines := make([]commands.PurchaseOrderLineInput, 0, len(body.Lines))
	for _, l := range body.Lines {
		lines = append(lines, commands.PurchaseOrderLineInput{SKU: l.Sku, ExpectedQty: l.ExpectedQty})
	}
	cmd, err := commands.NewCreatePurchaseOrderCommand(kernel.NewUUID(), body.Supplier, body.ExpectedDate.Time, lines)
	if err != nil {
		return err
	}
	number, err := s.h.CreatePurchaseOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedPurchaseOrder{Number: number})
}

// GetPutawayTasks handles GET /api/v1/putaway/tasks.
func (s *Server) GetPutawayTasks(ctx echo.Context) error {
	views, err := s.h.GetPutawayTasks.Handle(ctx.Request().Context(), queries.NewGetPutawayTasksQuery())
	if err != nil {
		return err
	}

	response := make([]servers.PutawayTask, 0, len(views))
	for _, v := range views {
		response = append(response, servers.PutawayTask{
			Id:         v.ID,
			ReceiptRef: v.ReceiptRef,
			Sku:        v.SKU,
			Quantity:   v.Quantity,
			BatchId:    v.BatchID,
			Source:     v.Source,
			Suggested:  v.Suggested,
			Priority:   v.Priority,
			Status:     v.Status,
			CreatedAt:  v.CreatedAt,
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// ConfirmPutaway handles POST /api/v1/putaway/tasks/{taskId}/confirm.
func (s *Server) ConfirmPutaway(ctx echo.Context, taskId openapi_types.UUID) error {
	id, err := toKernelID(taskId)
	if err != nil {
		return err
	}
	cmd, err := commands.NewConfirmPutawayCommand(id)
	if err != nil {
		return err
	}
	if err = s.h.ConfirmPutaway.Handle(ctx.Request().Context(), cmd); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}

func toOrder(v queries.OrderView) servers.Order {
	lines := make([]servers.OrderLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, servers.OrderLine{
			Index:     l.Index,
			TaskId:    l.TaskID,
			Sku:       l.SKU,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.StringFixed(2),
			Total:     l.Total.StringFixed(2),
			Picked:    l.Picked,
			Verified:  l.Verified,
		})
	}
	return servers.Order{
		Id:              v.ID.Bytes(),
		Number:          v.Number,
		Customer:        v.Customer,
		Priority:        v.Priority,
		Status:          v.Status,
		ShippingAddress: v.ShippingAddress,
		CreatedAt:       v.CreatedAt,
		Total:           v.Total.StringFixed(2),
		PackEligible:    v.PackEligible,
		Lines:           lines,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
