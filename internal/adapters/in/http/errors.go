package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// toHTTPError maps the error taxonomy to a status code and a body. Business
// failures carry their details so that one resubmission can fix every issue.
func toHTTPError(err error) (int, servers.Error) {
	body := servers.Error{Message: err.Error()}

	var (
		failed     *validation.ValidationFailedError
		mismatch   *warehouse.MismatchError
		incomplete *warehouse.IncompletePackingError
		shortage   *inventory.InsufficientStockError
		invariant  *inventory.InvariantViolationError
		httpErr    *echo.HTTPError
		invalid    validator.ValidationErrors
	)

	switch {
	case errors.As(err, &httpErr):
		body.Code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			body.Message = msg
		}
		return httpErr.Code, body

	case errors.As(err, &invalid):
		body.Code = http.StatusBadRequest
		for _, fe := range invalid {
			body.Reasons = append(body.Reasons, fe.Namespace()+" failed on "+fe.Tag())
		}

	// A conflict may wrap an unknown SKU; it is still a conflict.
	case errors.Is(err, inventory.ErrReservationConflict):
		body.Code = http.StatusConflict

	case errors.Is(err, errs.ErrObjectNotFound):
		body.Code = http.StatusNotFound

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		body.Code = http.StatusBadRequest

	case errors.Is(err, commands.ErrAlreadyTransitioning),
		errors.Is(err, order.ErrIllegalTransition),
		errors.Is(err, commands.ErrStockItemAlreadyExists),
		errors.Is(err, memory.ErrDuplicateKey),
		errors.Is(err, gorm.ErrDuplicatedKey):
		body.Code = http.StatusConflict

	case errors.As(err, &failed):
		body.Code = http.StatusUnprocessableEntity
		body.Reasons = failed.Reasons
		body.Details = map[string]any{"check": string(failed.Check)}

	case errors.As(err, &mismatch):
		body.Code = http.StatusUnprocessableEntity
		body.Details = map[string]any{
			"taskId":           mismatch.TaskID,
			"expectedLocation": mismatch.ExpectedLocation,
			"scannedLocation":  mismatch.ScannedLocation,
			"expectedSku":      mismatch.ExpectedSKU,
			"scannedSku":       mismatch.ScannedSKU,
		}

	case errors.As(err, &incomplete):
		body.Code = http.StatusUnprocessableEntity
		body.Details = map[string]any{
			"unpickedLines": incomplete.UnpickedLines,
			"missingSkus":   incomplete.MissingSKUs,
		}

	case errors.As(err, &shortage):
		body.Code = http.StatusUnprocessableEntity
		body.Details = map[string]any{"sku": shortage.SKU, "requested": shortage.Requested, "available": shortage.Available}

	case errors.Is(err, commands.ErrNotPackEligible):
		body.Code = http.StatusUnprocessableEntity

	case errors.Is(err, validation.ErrIndeterminate):
		body.Code = http.StatusServiceUnavailable

	case errors.As(err, &invariant):
		body.Code = http.StatusInternalServerError
		body.Details = map[string]any{"sku": invariant.SKU, "onHand": invariant.OnHand, "allocated": invariant.Allocated}

	default:
		body.Code = http.StatusInternalServerError
		body.Message = "internal error"
	}

	return body.Code, body
}

// ErrorHandler replaces echo's default so every error, including routing and
// binding errors, has the same JSON body.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}
	code, body := toHTTPError(err)
	if code >= http.StatusInternalServerError {
		ctx.Logger().Error(err)
	}
	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, body)
}
