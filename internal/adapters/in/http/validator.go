package http

import (
	"github.com/go-playground/validator/v10"
)

// RequestValidator adapts go-playground/validator to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator returns a validator reading the validate tags of request types.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate implements echo.Validator. Failures are validator.ValidationErrors,
// which the error handler answers with 400.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}
