package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// ReceivingDockCode is where received goods wait for putaway.
	ReceivingDockCode = "Receiving Dock"
	// DefaultStorageCode is suggested for putaway when a SKU has no home location.
	DefaultStorageCode = "Zone A-01"
	// UnknownLocationCode stands in for a SKU missing from the ledger.
	UnknownLocationCode = "Unknown"
	// DefaultZone is used when a location code has no leading segment.
	DefaultZone = "Zone A"

	zoneSeparator = "-"
)

// ErrLocationIsNotConstructed is returned by Validate for a zero Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError("location must be created via NewLocation")

// Location is a storage or staging position such as "Zone A-12" or "Receiving Dock".
//
// The code is free text chosen by the warehouse; the only structure the engine
// relies on is the zone, which is the segment before the first '-'. Picking
// tasks are grouped by zone and putaway suggestions fall back to
// DefaultStorageCode when a SKU has no home location.
//
// Locations are compared exactly. A scan of "zone a-12" does not match
// "Zone A-12"; see Matches.
//
// Example:
//
//	loc, err := kernel.NewLocation("Zone C-01")
//	if err != nil {
//	    return err
//	}
//	loc.Zone() // "Zone C"
type Location struct { //nolint:recvcheck //using for validation
	code  string
	guard guard.ConstructorGuard
}

// NewLocation trims code and rejects blank values.
//
// Parameters:
//   - code: the location label, e.g. "Zone A-12"
//
// Returns:
//   - the Location
//   - errs.ErrValueIsRequired if code is blank after trimming
func NewLocation(code string) (Location, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Location{}, errs.NewValueIsRequiredError("location")
	}
	return Location{code: code, guard: guard.NewConstructorGuard()}, nil
}

// MustLocation is NewLocation for compile-time constants; it panics on blank input.
func MustLocation(code string) Location {
	l, err := NewLocation(code)
	if err != nil {
		panic(err)
	}
	return l
}

// ReceivingDock is the source location of every putaway task.
func ReceivingDock() Location {
	return MustLocation(ReceivingDockCode)
}

// DefaultStorage is the putaway suggestion for SKUs without a home location.
func DefaultStorage() Location {
	return MustLocation(DefaultStorageCode)
}

// UnknownLocation labels picking tasks whose SKU is missing from the ledger.
func UnknownLocation() Location {
	return MustLocation(UnknownLocationCode)
}

// Code returns the trimmed label.
func (l Location) Code() string {
	return l.code
}

func (l Location) String() string {
	return l.code
}

// Zone returns the leading segment of the code: "Zone A-12" -> "Zone A".
func (l Location) Zone() string {
	head, _, _ := strings.Cut(l.code, zoneSeparator)
	head = strings.TrimSpace(head)
	if head == "" {
		return DefaultZone
	}
	return head
}

// Matches reports whether a scanned code names this location exactly. Pick
// confirmation uses it, so neither case nor surrounding spaces are forgiven.
func (l Location) Matches(scanned string) bool {
	return l.code == scanned
}

// IsEqual compares two locations by code.
func (l Location) IsEqual(other Location) bool {
	return l.code == other.code
}

// Validate returns ErrLocationIsNotConstructed for a zero Location.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}
