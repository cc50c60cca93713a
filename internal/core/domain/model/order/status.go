package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the position of an order in its lifecycle. Numeric order is lifecycle order.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	// Confirmed is the status of a newly created order.
	Confirmed
	// CreditCheck is entered while the customer's credit is checked.
	CreditCheck
	// ComplianceScreening is entered while the order is screened.
	ComplianceScreening
	// WarehousePick means stock is reserved and picking may start.
	WarehousePick
	// Shipped means every line was picked and stock consumed.
	Shipped
	// Invoiced is terminal.
	Invoiced
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Confirmed:           "Confirmed",
		CreditCheck:         "CreditCheck",
		ComplianceScreening: "ComplianceScreening",
		WarehousePick:       "WarehousePick",
		Shipped:             "Shipped",
		Invoiced:            "Invoiced",
	}
}

// ParseStatus is the inverse of String.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and values outside the enum.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "Unknown" for an invalid value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Before reports whether s comes strictly earlier in the lifecycle than other.
func (s Status) Before(other Status) bool {
	return s < other
}

// IsPrePick is true while the order is still being validated.
func (s Status) IsPrePick() bool {
	return s >= Confirmed && s < WarehousePick
}

// StartCreditCheck is allowed from Confirmed only.
func (s Status) StartCreditCheck() (Status, error) {
	return s.step(CreditCheck, Confirmed)
}

// StartComplianceScreening is allowed from CreditCheck only.
func (s Status) StartComplianceScreening() (Status, error) {
	return s.step(ComplianceScreening, CreditCheck)
}

// StartPicking may be entered from any pre-pick status: the intermediate
// validation statuses are never persisted.
func (s Status) StartPicking() (Status, error) {
	return s.step(WarehousePick, Confirmed, CreditCheck, ComplianceScreening)
}

// Ship is allowed from WarehousePick only.
func (s Status) Ship() (Status, error) {
	return s.step(Shipped, WarehousePick)
}

// Invoice is allowed from Shipped only.
func (s Status) Invoice() (Status, error) {
	return s.step(Invoiced, Shipped)
}

// TransitionTo dispatches to the edge method for target.
//
// Parameters:
//   - target: any status after Confirmed
//
// Returns:
//   - the new status
//   - s and *IllegalTransitionError when no edge leads from s to target,
//     including every target not reachable in one step
//
// Example:
//
//	next, err := order.Shipped.TransitionTo(order.Invoiced) // Invoiced, nil
//	_, err = order.Confirmed.TransitionTo(order.Shipped)     // IllegalTransitionError
func (s Status) TransitionTo(target Status) (Status, error) {
	switch target {
	case CreditCheck:
		return s.StartCreditCheck()
	case ComplianceScreening:
		return s.StartComplianceScreening()
	case WarehousePick:
		return s.StartPicking()
	case Shipped:
		return s.Ship()
	case Invoiced:
		return s.Invoice()
	default:
		return s, &IllegalTransitionError{From: s, To: target}
	}
}

// step returns target if s is one of allowedFrom, and s with an
// *IllegalTransitionError otherwise.
func (s Status) step(target Status, allowedFrom ...Status) (Status, error) {
	for _, from := range allowedFrom {
		if s == from {
			return target, nil
		}
	}
	return s, &IllegalTransitionError{From: s, To: target}
}
