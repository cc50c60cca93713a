package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// EventPublisher delivers committed status changes. Delivery is best effort:
// implementations log their own failures and never fail the caller.
type EventPublisher interface {
	Publish(ctx context.Context, events ...order.StatusChanged)
}
