package inventory

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// ComplianceStatus is the review state of a received batch.
type ComplianceStatus int

const (
	// ComplianceUnknown is the zero value and never valid.
	ComplianceUnknown ComplianceStatus = iota
	// PendingReview is the status of every newly received batch.
	PendingReview
	// Compliant means the batch passed review.
	Compliant
	// NonCompliant means the batch failed review. The engine records the
	// outcome only; quarantining the stock is an operator decision.
	NonCompliant
)

var complianceStrings = map[ComplianceStatus]string{
	PendingReview: "PendingReview",
	Compliant:     "Compliant",
	NonCompliant:  "NonCompliant",
}

// ParseComplianceStatus accepts the String form in any case, with or without spaces.
func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	normalized := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for status, str := range complianceStrings {
		if strings.ToLower(str) == normalized {
			return status, nil
		}
	}
	return ComplianceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"compliance status", fmt.Errorf("%q is not a compliance status", s))
}

// String returns the wire name, or "Unknown" for an invalid value.
func (s ComplianceStatus) String() string {
	if str, ok := complianceStrings[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects ComplianceUnknown and values outside the enum.
func (s ComplianceStatus) Validate() error {
	if _, ok := complianceStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"compliance status", fmt.Errorf("%d is not a valid compliance status", s))
	}
	return nil
}
