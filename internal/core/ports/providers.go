package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"

	"github.com/shopspring/decimal"
)

// CreditCheckProvider decides whether a customer may be extended credit for amount.
// An error means the provider could not decide and is reported as Indeterminate.
type CreditCheckProvider interface {
	CheckCredit(ctx context.Context, customer string, amount decimal.Decimal) (validation.Outcome, error)
}

// ComplianceCheckProvider screens an order for export or trade restrictions.
// Like CreditCheckProvider, an error is reported as Indeterminate. Priority
// is passed because screening rules may apply to some priorities only.
type ComplianceCheckProvider interface {
	CheckCompliance(ctx context.Context, customer string, priority order.Priority, destination string) (validation.Outcome, error)
}
