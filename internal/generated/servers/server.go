package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/inventory)
	GetStockLevels(ctx echo.Context) error
	// (POST /api/v1/inventory)
	RegisterStockItem(ctx echo.Context) error
	// (POST /api/v1/inventory/receipts)
	ReceiveGoods(ctx echo.Context) error
	// (PUT /api/v1/inventory/{sku}/batches/{batchId}/compliance)
	UpdateBatchCompliance(ctx echo.Context, sku string, batchId string) error
	// (POST /api/v1/inventory/{sku}/release)
	ReleaseStock(ctx echo.Context, sku string) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (POST /api/v1/orders)
	CreateOrder(ctx echo.Context) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/invoice)
	IssueInvoice(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/pack-items)
	TogglePackItem(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/shipment)
	FinalizeShipment(ctx echo.Context, orderId openapi_types.UUID) error
	// (POST /api/v1/orders/{orderId}/validate)
	ValidateOrder(ctx echo.Context, orderId openapi_types.UUID) error
	// (GET /api/v1/packing/orders)
	GetPackingReadyOrders(ctx echo.Context) error
	// (GET /api/v1/picking/tasks)
	GetPickingTasks(ctx echo.Context, params GetPickingTasksParams) error
	// (POST /api/v1/picking/tasks/{taskId}/confirm)
	ConfirmPick(ctx echo.Context, taskId string) error
	// (GET /api/v1/purchase-orders)
	ListPurchaseOrders(ctx echo.Context) error
	// (POST /api/v1/purchase-orders)
	CreatePurchaseOrder(ctx echo.Context) error
	// (GET /api/v1/putaway/tasks)
	GetPutawayTasks(ctx echo.Context) error
	// (POST /api/v1/putaway/tasks/{taskId}/confirm)
	ConfirmPutaway(ctx echo.Context, taskId openapi_types.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPath(ctx echo.Context, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) GetStockLevels(ctx echo.Context) error {
	return w.Handler.GetStockLevels(ctx)
}

func (w *ServerInterfaceWrapper) RegisterStockItem(ctx echo.Context) error {
	return w.Handler.RegisterStockItem(ctx)
}

func (w *ServerInterfaceWrapper) ReceiveGoods(ctx echo.Context) error {
	return w.Handler.ReceiveGoods(ctx)
}

func (w *ServerInterfaceWrapper) UpdateBatchCompliance(ctx echo.Context) error {
	var sku, batchId string
	if err := bindPath(ctx, "sku", &sku); err != nil {
		return err
	}
	if err := bindPath(ctx, "batchId", &batchId); err != nil {
		return err
	}
	return w.Handler.UpdateBatchCompliance(ctx, sku, batchId)
}

func (w *ServerInterfaceWrapper) ReleaseStock(ctx echo.Context) error {
	var sku string
	if err := bindPath(ctx, "sku", &sku); err != nil {
		return err
	}
	return w.Handler.ReleaseStock(ctx, sku)
}

func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	err := runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) IssueInvoice(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.IssueInvoice(ctx, orderId)
}

func (w *ServerInterfaceWrapper) TogglePackItem(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.TogglePackItem(ctx, orderId)
}

func (w *ServerInterfaceWrapper) FinalizeShipment(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.FinalizeShipment(ctx, orderId)
}

func (w *ServerInterfaceWrapper) ValidateOrder(ctx echo.Context) error {
	var orderId openapi_types.UUID
	if err := bindPath(ctx, "orderId", &orderId); err != nil {
		return err
	}
	return w.Handler.ValidateOrder(ctx, orderId)
}

func (w *ServerInterfaceWrapper) GetPackingReadyOrders(ctx echo.Context) error {
	return w.Handler.GetPackingReadyOrders(ctx)
}

func (w *ServerInterfaceWrapper) GetPickingTasks(ctx echo.Context) error {
	var params GetPickingTasksParams
	err := runtime.BindQueryParameter("form", true, false, "strategy", ctx.QueryParams(), &params.Strategy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter strategy: %s", err))
	}
	return w.Handler.GetPickingTasks(ctx, params)
}

func (w *ServerInterfaceWrapper) ConfirmPick(ctx echo.Context) error {
	var taskId string
	if err := bindPath(ctx, "taskId", &taskId); err != nil {
		return err
	}
	return w.Handler.ConfirmPick(ctx, taskId)
}

func (w *ServerInterfaceWrapper) ListPurchaseOrders(ctx echo.Context) error {
	return w.Handler.ListPurchaseOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreatePurchaseOrder(ctx echo.Context) error {
	return w.Handler.CreatePurchaseOrder(ctx)
}

func (w *ServerInterfaceWrapper) GetPutawayTasks(ctx echo.Context) error {
	return w.Handler.GetPutawayTasks(ctx)
}

func (w *ServerInterfaceWrapper) ConfirmPutaway(ctx echo.Context) error {
	var taskId openapi_types.UUID
	if err := bindPath(ctx, "taskId", &taskId); err != nil {
		return err
	}
	return w.Handler.ConfirmPutaway(ctx, taskId)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/inventory", w.GetStockLevels)
	router.POST(baseURL+"/api/v1/inventory", w.RegisterStockItem)
	router.POST(baseURL+"/api/v1/inventory/receipts", w.ReceiveGoods)
	router.PUT(baseURL+"/api/v1/inventory/:sku/batches/:batchId/compliance", w.UpdateBatchCompliance)
	router.POST(baseURL+"/api/v1/inventory/:sku/release", w.ReleaseStock)
	router.GET(baseURL+"/api/v1/orders", w.ListOrders)
	router.POST(baseURL+"/api/v1/orders", w.CreateOrder)
	router.GET(baseURL+"/api/v1/orders/:orderId", w.GetOrder)
	router.POST(baseURL+"/api/v1/orders/:orderId/invoice", w.IssueInvoice)
	router.POST(baseURL+"/api/v1/orders/:orderId/pack-items", w.TogglePackItem)
	router.POST(baseURL+"/api/v1/orders/:orderId/shipment", w.FinalizeShipment)
	router.POST(baseURL+"/api/v1/orders/:orderId/validate", w.ValidateOrder)
	router.GET(baseURL+"/api/v1/packing/orders", w.GetPackingReadyOrders)
	router.GET(baseURL+"/api/v1/picking/tasks", w.GetPickingTasks)
	router.POST(baseURL+"/api/v1/picking/tasks/:taskId/confirm", w.ConfirmPick)
	router.GET(baseURL+"/api/v1/purchase-orders", w.ListPurchaseOrders)
	router.POST(baseURL+"/api/v1/purchase-orders", w.CreatePurchaseOrder)
	router.GET(baseURL+"/api/v1/putaway/tasks", w.GetPutawayTasks)
	router.POST(baseURL+"/api/v1/putaway/tasks/:taskId/confirm", w.ConfirmPutaway)
}
