package order

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderIsNotConstructed is returned by Order.Validate for a zero value.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLineIsNotConstructed is returned by Line.Validate for a zero value.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

	// ErrIllegalTransition is wrapped by *IllegalTransitionError. The HTTP
	// layer answers 409 for it.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// IllegalTransitionError reports an attempt to move an order along an edge
// that does not exist. From is the status the order was in, To the status
// the caller asked for.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}
