// Package guard provides ConstructorGuard, a marker embedded in value objects,
// commands and queries so that zero values can be told apart from instances
// built through their constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when the
// caller passes a nil error, so that an unconstructed object never validates
// silently.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the enclosing object was created by its
// constructor. The zero value is "not constructed".
//
// Commands, queries and value objects in this module are plain structs with
// private fields. A caller can still declare one as a zero value and hand it
// to a handler; embedding a guard lets the handler reject it in Validate
// before any field is read.
//
// The guard carries a single flag which only NewConstructorGuard sets, so it
// is safe to copy together with the value that embeds it.
//
// Example:
//
//	var ErrReceiveGoodsCommandIsNotConstructed = errors.New(
//	    "ReceiveGoodsCommand must be created via NewReceiveGoodsCommand")
//
//	type ReceiveGoodsCommand struct {
//	    sku      string
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewReceiveGoodsCommand(sku string, quantity int) (ReceiveGoodsCommand, error) {
//	    if quantity <= 0 {
//	        return ReceiveGoodsCommand{}, errs.NewValueIsInvalidError("quantity")
//	    }
//	    return ReceiveGoodsCommand{sku: sku, quantity: quantity, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c ReceiveGoodsCommand) Validate() error {
//	    return c.guard.Validate(ErrReceiveGoodsCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it from the
// constructor once every argument has been validated, and from Restore
// functions that rehydrate stored rows.
//
// Returns:
//   - A ConstructorGuard whose Validate returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object went through its constructor.
//
// Parameters:
//   - validationError: the error to report for a zero value; nil selects
//     ErrDefaultConstructorGuard
//
// Returns:
//   - nil if the guard was created by NewConstructorGuard
//   - validationError, or ErrDefaultConstructorGuard when it is nil, otherwise
//
// Example:
//
//	func (q GetPickingTasksQuery) Validate() error {
//	    return q.guard.Validate(ErrGetPickingTasksQueryIsNotConstructed)
//	}
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
