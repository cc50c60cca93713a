package commands

import (
	"errors"

	"fulfillment/internal/pkg/keylock"
)

// ErrAlreadyTransitioning is returned when another caller is moving the same
// order. It is expected under concurrency and safe to retry immediately.
var ErrAlreadyTransitioning = errors.New("order is already transitioning")

// Locks serializes work inside one process so that losers fail fast. Across
// processes the row locks taken through OrderRepository.GetForUpdate and
// InventoryRepository.GetForUpdate decide the winner.
type Locks struct {
	// Orders admits one transition per order at a time; losers fail fast.
	Orders *keylock.Locker
	// Tasks serializes confirmations of the same picking task.
	Tasks *keylock.Locker
	// Packing serializes packing session edits and finalization per order.
	Packing *keylock.Locker
}

// NewLocks returns empty lockers. Create one per process and share it between handlers.
func NewLocks() *Locks {
	return &Locks{
		Orders:  keylock.New(),
		Tasks:   keylock.New(),
		Packing: keylock.New(),
	}
}
