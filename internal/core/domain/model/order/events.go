package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// StatusChanged is recorded by every successful transition and published once
// the unit of work that persisted it has committed.
//
// Publishing is best effort: a failed publish is logged and the committed
// transition stands, so consumers must not treat the stream as the ledger.
type StatusChanged struct {
	// OrderID identifies the order that moved.
	OrderID kernel.UUID
	// OrderNumber is carried so consumers need not look the order up.
	OrderNumber string
	// From is the status before the transition.
	From Status
	// To is the status after the transition.
	To Status
	// OccurredAt is when the transition was applied, in UTC.
	OccurredAt time.Time
}
