package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

// ErrConfirmPutawayCommandIsNotConstructed is returned by Validate for a zero value.
var ErrConfirmPutawayCommandIsNotConstructed = errors.New(
	"ConfirmPutawayCommand must be created via NewConfirmPutawayCommand constructor",
)

// ConfirmPutawayCommand reports goods stowed at their suggested location.
// Unlike picking there is no scan gate.
type ConfirmPutawayCommand struct {
	taskID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPutawayCommand rejects the nil task id.
func NewConfirmPutawayCommand(taskID kernel.UUID) (ConfirmPutawayCommand, error) {
	if err := taskID.Validate(); err != nil {
		return ConfirmPutawayCommand{}, err
	}
	return ConfirmPutawayCommand{taskID: taskID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPutawayCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPutawayCommandIsNotConstructed)
}

// TaskID returns the putaway task to complete.
func (c ConfirmPutawayCommand) TaskID() kernel.UUID {
	return c.taskID
}
