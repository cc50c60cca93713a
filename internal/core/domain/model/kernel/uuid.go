package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned by Validate for the zero UUID, which is
// what a UUID declared without one of the constructors holds.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

// UUID identifies orders, putaway tasks and purchase orders.
//
// It wraps github.com/google/uuid so that the domain never handles the nil
// UUID: every constructor rejects it and Validate reports it. Values are
// immutable and comparable with == as well as IsEqual.
//
// Example:
//
//	orderID := kernel.NewUUID()
//
//	parsed, err := kernel.UUIDFromString(c.Param("orderId"))
//	if err != nil {
//	    return err // 400 at the HTTP edge
//	}
//	if parsed.IsEqual(orderID) {
//	    // same order
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a random (version 4) UUID. Order intake and goods receipt
// use it for new aggregates.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID received from outside the engine.
//
// Accepted forms:
//   - "6f1c2e0a-3a5b-4a8e-9a57-1c5d0f3b2a11"
//   - "{6f1c2e0a-3a5b-4a8e-9a57-1c5d0f3b2a11}"
//   - "urn:uuid:6f1c2e0a-3a5b-4a8e-9a57-1c5d0f3b2a11"
//   - "6f1c2e0a3a5b4a8e9a571c5d0f3b2a11"
//
// Returns:
//   - the parsed UUID
//   - an error wrapping the parse failure, or ErrUUIDIsNotConstructed for the nil UUID
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// UUIDFromBytes builds a UUID from exactly 16 bytes, as stored in the uuid
// columns of the database and in openapi path parameters.
//
// Returns:
//   - the UUID
//   - an error for any other length, or ErrUUIDIsNotConstructed for 16 zero bytes
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	parsed := UUID{id: id}
	if err = parsed.Validate(); err != nil {
		return UUID{}, err
	}
	return parsed, nil
}

// String returns the canonical lower-case hyphenated form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the wrapped google/uuid value, used by persistence adapters
// and the HTTP layer.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both values identify the same aggregate.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate fails for the zero (nil) UUID.
//
// Returns:
//   - nil for any UUID produced by a constructor
//   - ErrUUIDIsNotConstructed otherwise
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
