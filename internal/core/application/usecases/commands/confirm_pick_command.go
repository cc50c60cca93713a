package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/pkg/guard"
)

// ErrConfirmPickCommandIsNotConstructed is returned by Validate for a zero value.
var ErrConfirmPickCommandIsNotConstructed = errors.New(
	"ConfirmPickCommand must be created via NewConfirmPickCommand constructor",
)

// ConfirmPickCommand carries what the picker scanned at the shelf.
// Scanned values are compared exactly; only surrounding blanks are trimmed.
type ConfirmPickCommand struct {
	ref             warehouse.LineRef
	scannedLocation string
	scannedSKU      string

	guard guard.ConstructorGuard
}

// NewConfirmPickCommand parses taskID into its order line. Both scanned values
// are required; whether they match is decided by the handler.
func NewConfirmPickCommand(taskID, scannedLocation, scannedSKU string) (ConfirmPickCommand, error) {
	ref, err := warehouse.ParseTaskID(taskID)
	if err != nil {
		return ConfirmPickCommand{}, err
	}
	return ConfirmPickCommand{
		ref:             ref,
		scannedLocation: strings.TrimSpace(scannedLocation),
		scannedSKU:      strings.TrimSpace(scannedSKU),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPickCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickCommandIsNotConstructed)
}

// Ref returns the order line the task stands for.
func (c ConfirmPickCommand) Ref() warehouse.LineRef {
	return c.ref
}

// ScannedLocation returns the location code read by the scanner.
func (c ConfirmPickCommand) ScannedLocation() string {
	return c.scannedLocation
}

// ScannedSKU returns the SKU read by the scanner.
func (c ConfirmPickCommand) ScannedSKU() string {
	return c.scannedSKU
}
