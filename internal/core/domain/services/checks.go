package services

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/ports"
)

// InventoryAvailabilityCheck fails when any line exceeds available stock and lists every shortfall.
type InventoryAvailabilityCheck struct{}

// NewInventoryAvailabilityCheck returns the first check of the pipeline.
func NewInventoryAvailabilityCheck() InventoryAvailabilityCheck {
	return InventoryAvailabilityCheck{}
}

func (InventoryAvailabilityCheck) Name() validation.CheckName {
	return validation.InventoryCheck
}

// Evaluate reads only the snapshot in in.Stock and never reserves. A line
// whose SKU has no row fails with "SKU not found".
func (InventoryAvailabilityCheck) Evaluate(_ context.Context, in CheckInput) (validation.Outcome, error) {
	var reasons []string
	for _, line := range in.Order.Lines() {
		item, ok := in.Stock[line.SKU()]
		if !ok {
			reasons = append(reasons, fmt.Sprintf("SKU not found: %s", line.SKU()))
			continue
		}
		if available := item.Available(); available < line.Quantity() {
			reasons = append(reasons, fmt.Sprintf("Insufficient stock for %s. Need %d, Available %d.",
				item.Name(), line.Quantity(), available))
		}
	}
	if len(reasons) > 0 {
		return validation.Failed(reasons...), nil
	}
	return validation.Passed(), nil
}

// CreditCheck asks a CreditCheckProvider about the order total.
type CreditCheck struct {
	provider ports.CreditCheckProvider
}

// NewCreditCheck wraps provider.
func NewCreditCheck(provider ports.CreditCheckProvider) CreditCheck {
	return CreditCheck{provider: provider}
}

func (CreditCheck) Name() validation.CheckName {
	return validation.CreditCheck
}

// Evaluate passes the customer and the order total to the provider.
func (c CreditCheck) Evaluate(ctx context.Context, in CheckInput) (validation.Outcome, error) {
	return c.provider.CheckCredit(ctx, in.Order.Customer(), in.Order.Total())
}

// ComplianceCheck asks a ComplianceCheckProvider to screen customer, priority and destination.
type ComplianceCheck struct {
	provider ports.ComplianceCheckProvider
}

// NewComplianceCheck wraps provider.
func NewComplianceCheck(provider ports.ComplianceCheckProvider) ComplianceCheck {
	return ComplianceCheck{provider: provider}
}

func (ComplianceCheck) Name() validation.CheckName {
	return validation.ComplianceCheck
}

func (c ComplianceCheck) Evaluate(ctx context.Context, in CheckInput) (validation.Outcome, error) {
	return c.provider.CheckCompliance(ctx, in.Order.Customer(), in.Order.Priority(), in.Order.ShippingAddress())
}

// StandardChecks returns the checks in their required order.
func StandardChecks(credit ports.CreditCheckProvider, compliance ports.ComplianceCheckProvider) []Check {
	return []Check{
		NewInventoryAvailabilityCheck(),
		NewCreditCheck(credit),
		NewComplianceCheck(compliance),
	}
}
