package checks

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
)

// RestrictedDestinationProvider screens orders for export restrictions.
// Denied customers fail at every priority. Destinations are screened only for
// the screened priorities, Critical by default. Matching is a case-insensitive substring test.
type RestrictedDestinationProvider struct {
	restricted []string
	denied     map[string]struct{}
	screened   map[order.Priority]struct{}
}

// ComplianceOption configures a RestrictedDestinationProvider.
type ComplianceOption func(*RestrictedDestinationProvider)

// WithDeniedCustomer blocks every order of customer regardless of destination.
func WithDeniedCustomer(customer string) ComplianceOption {
	return func(p *RestrictedDestinationProvider) { p.denied[strings.ToLower(customer)] = struct{}{} }
}

// WithScreenedPriorities replaces the priorities whose destinations are screened.
func WithScreenedPriorities(priorities ...order.Priority) ComplianceOption {
	return func(p *RestrictedDestinationProvider) {
		p.screened = make(map[order.Priority]struct{}, len(priorities))
		for _, priority := range priorities {
			p.screened[priority] = struct{}{}
		}
	}
}

// NewRestrictedDestinationProvider screens destinations against restricted,
// compared case-insensitively as substrings of the address.
func NewRestrictedDestinationProvider(restricted []string, opts ...ComplianceOption) *RestrictedDestinationProvider {
	p := &RestrictedDestinationProvider{
		denied:   make(map[string]struct{}),
		screened: map[order.Priority]struct{}{order.Critical: {}},
	}
	for _, r := range restricted {
		if r = strings.TrimSpace(r); r != "" {
			p.restricted = append(p.restricted, strings.ToLower(r))
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckCompliance fails a denied customer at any priority and a restricted
// destination at the screened priorities. Every reason found is listed.
func (p *RestrictedDestinationProvider) CheckCompliance(
	ctx context.Context,
	customer string,
	priority order.Priority,
	destination string,
) (validation.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return validation.Outcome{}, err
	}

	var reasons []string
	if _, ok := p.denied[strings.ToLower(customer)]; ok {
		reasons = append(reasons, "Customer "+customer+" is on the denied party list.")
	}
	if _, ok := p.screened[priority]; ok {
		dest := strings.ToLower(destination)
		for _, r := range p.restricted {
			if strings.Contains(dest, r) {
				reasons = append(reasons, "Compliance screening flagged potential export restriction: "+r+".")
			}
		}
	}

	if len(reasons) > 0 {
		return validation.Failed(reasons...), nil
	}
	return validation.Passed(), nil
}
