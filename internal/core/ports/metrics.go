package ports

import (
	"time"

	"fulfillment/internal/core/domain/model/validation"
)

// Metrics receives engine counters. Implementations must be safe for
// concurrent use and must not block.
type Metrics interface {
	// CheckCompleted is called once per executed validation check.
	CheckCompleted(check validation.CheckName, verdict validation.Verdict, took time.Duration)

	// ReservationFailed is called when stock could not be reserved after
	// validation passed; reason is a short label such as "conflict".
	ReservationFailed(reason string)

	// PickConfirmed is called for every scan, matched or not.
	PickConfirmed(matched bool)

	// OrderShipped is called after a shipment commits.
	OrderShipped()

	// InvariantViolations reports the number of broken ledger rows found
	// by the last audit.
	InvariantViolations(count int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) CheckCompleted(validation.CheckName, validation.Verdict, time.Duration) {}
func (NopMetrics) ReservationFailed(string) {}
func (NopMetrics) PickConfirmed(bool) {}
func (NopMetrics) OrderShipped() {}
func (NopMetrics) InvariantViolations(int) {}
