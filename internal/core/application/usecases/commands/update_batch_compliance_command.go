package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrUpdateBatchComplianceCommandIsNotConstructed is returned by Validate for a zero value.
var ErrUpdateBatchComplianceCommandIsNotConstructed = errors.New(
	"UpdateBatchComplianceCommand must be created via NewUpdateBatchComplianceCommand constructor",
)

// UpdateBatchComplianceCommand records the outcome of a batch quality review.
type UpdateBatchComplianceCommand struct {
	sku     string
	batchID string
	status  inventory.ComplianceStatus

	guard guard.ConstructorGuard
}

// NewUpdateBatchComplianceCommand requires a SKU, a batch id and a valid status.
func NewUpdateBatchComplianceCommand(
	sku, batchID string,
	status inventory.ComplianceStatus,
) (UpdateBatchComplianceCommand, error) {
	cmd := UpdateBatchComplianceCommand{
		sku:     strings.TrimSpace(sku),
		batchID: strings.TrimSpace(batchID),
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}

	var skuErr, batchErr error
	if cmd.sku == "" {
		skuErr = errs.NewValueIsRequiredError("sku")
	}
	if cmd.batchID == "" {
		batchErr = errs.NewValueIsRequiredError("batchId")
	}
	if err := errors.Join(skuErr, batchErr, status.Validate()); err != nil {
		return UpdateBatchComplianceCommand{}, err
	}
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateBatchComplianceCommand) Validate() error {
	return c.guard.Validate(ErrUpdateBatchComplianceCommandIsNotConstructed)
}

// SKU returns the SKU owning the batch.
func (c UpdateBatchComplianceCommand) SKU() string {
	return c.sku
}

// BatchID returns the batch to review.
func (c UpdateBatchComplianceCommand) BatchID() string {
	return c.batchID
}

// Status returns the review outcome.
func (c UpdateBatchComplianceCommand) Status() inventory.ComplianceStatus {
	return c.status
}

