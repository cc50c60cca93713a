package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Priority orders urgency: Critical > High > Normal.
type Priority int

const (
	// PriorityUnknown is the zero value and never valid.
	PriorityUnknown Priority = iota
	// Normal orders are picked after every High and Critical order.
	Normal
	// High is the default for orders created over HTTP without a priority.
	High
	// Critical orders are picked first and screened for restricted destinations.
	Critical
)

var priorityStrings = map[Priority]string{
	Normal:   "Normal",
	High:     "High",
	Critical: "Critical",
}

// Priorities lists the valid priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{Critical, High, Normal}
}

// ParsePriority accepts the String form case-insensitively, with
// surrounding whitespace ignored.
func ParsePriority(s string) (Priority, error) {
	for p, str := range priorityStrings {
		if strings.EqualFold(str, strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}

// String returns the wire name, or "Unknown" for an invalid value.
func (p Priority) String() string {
	if str, ok := priorityStrings[p]; ok {
		return str
	}
	return "Unknown"
}

// Validate rejects PriorityUnknown and values outside the enum.
func (p Priority) Validate() error {
	if _, ok := priorityStrings[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}
