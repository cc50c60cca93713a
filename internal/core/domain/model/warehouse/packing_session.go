package warehouse

import (
	"sort"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// PackingSession is the set of SKUs an operator has verified while packing one order.
//
// A session only records verification marks. Whether the order can be
// dispatched is decided by CheckPackingComplete, which also needs the
// PickState.
type PackingSession struct {
	// orderID is the order being packed; one session per order.
	orderID kernel.UUID
	// verified holds the SKUs currently marked, toggled by the operator.
	verified map[string]struct{}

	isConstructed bool
}

// NewPackingSession starts an empty session.
//
// Returns:
//   - the session
//   - the UUID validation error for the nil order id
func NewPackingSession(orderID kernel.UUID) (*PackingSession, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return &PackingSession{
		orderID:       orderID,
		verified:      make(map[string]struct{}),
		isConstructed: true,
	}, nil
}

// RestorePackingSession rehydrates a stored session. Duplicate SKUs collapse.
func RestorePackingSession(orderID kernel.UUID, verified []string) *PackingSession {
	s := &PackingSession{
		orderID:       orderID,
		verified:      make(map[string]struct{}, len(verified)),
		isConstructed: true,
	}
	for _, sku := range verified {
		s.verified[sku] = struct{}{}
	}
	return s
}

// Validate fails for a nil or zero session.
func (s *PackingSession) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrPackingSessionIsNotConstructed
	}
	return nil
}

// OrderID returns the order being packed.
func (s *PackingSession) OrderID() kernel.UUID {
	return s.orderID
}

// Toggle flips the verified mark of sku and returns the new state. SKUs that
// are not on the order are accepted; they never satisfy the dispatch gate.
func (s *PackingSession) Toggle(sku string) (bool, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return false, errs.NewValueIsRequiredError("sku")
	}
	if _, ok := s.verified[sku]; ok {
		delete(s.verified, sku)
		return false, nil
	}
	s.verified[sku] = struct{}{}
	return true, nil
}

// IsVerified reports whether sku is marked. A nil session has verified nothing.
func (s *PackingSession) IsVerified(sku string) bool {
	if s == nil {
		return false
	}
	_, ok := s.verified[sku]
	return ok
}

// VerifiedSKUs returns the verified set sorted.
func (s *PackingSession) VerifiedSKUs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, len(s.verified))
	for sku := range s.verified {
		out = append(out, sku)
	}
	sort.Strings(out)
	return out
}

// MissingSKUs returns the required SKUs not yet verified, in required order.
// A nil session has verified nothing.
func (s *PackingSession) MissingSKUs(required []string) []string {
	var missing []string
	for _, sku := range required {
		if !s.IsVerified(sku) {
			missing = append(missing, sku)
		}
	}
	return missing
}

// IsPackEligible is true once o is in WarehousePick and every line is picked.
func IsPackEligible(o *order.Order, picks PickState) bool {
	return o.Status() == order.WarehousePick && picks.AllPicked(o)
}

// CheckPackingComplete is the dispatch gate: every line picked and every line SKU verified.
// session may be nil when packing never started.
//
// Returns:
//   - nil when the order may ship
//   - *IncompletePackingError listing unpicked lines and unverified SKUs
func CheckPackingComplete(o *order.Order, picks PickState, session *PackingSession) error {
	unpicked := picks.UnpickedLines(o)
	missing := session.MissingSKUs(o.LineSKUs())
	if len(unpicked) == 0 && len(missing) == 0 {
		return nil
	}
	return &IncompletePackingError{OrderID: o.ID(), UnpickedLines: unpicked, MissingSKUs: missing}
}
