// Package checks holds the credit and compliance providers called by the
// validation pipeline, and a circuit breaker that guards remote ones.
package checks

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/validation"

	"github.com/shopspring/decimal"
)

// DefaultCreditThreshold is the order total above which the secondary credit signal is consulted.
var DefaultCreditThreshold = decimal.NewFromInt(50_000_000)

// Defaults of ThresholdCreditProvider.
const (
	// DefaultMinCreditScore is the lowest score that still approves an order above the threshold.
	DefaultMinCreditScore = 0.2
	// DefaultCreditScore is the score of a customer with no recorded standing.
	DefaultCreditScore = 1.0
)

// CreditScorer is the secondary credit signal: a score in [0, 1] per customer,
// where higher is better.
type CreditScorer interface {
	CreditScore(ctx context.Context, customer string) (float64, error)
}

// StaticCreditScores is a CreditScorer backed by a fixed table. Unknown
// customers get DefaultCreditScore.
type StaticCreditScores map[string]float64

// CreditScore returns DefaultCreditScore for customers not in the map.
func (s StaticCreditScores) CreditScore(ctx context.Context, customer string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if score, ok := s[customer]; ok {
		return score, nil
	}
	return DefaultCreditScore, nil
}

// ThresholdCreditProvider approves every order up to a threshold. Above it the
// order is approved unless the customer's credit score is below the minimum.
// Customers with an explicit limit are judged against that limit instead of
// the threshold.
type ThresholdCreditProvider struct {
	threshold decimal.Decimal
	limits    map[string]decimal.Decimal
	scores    StaticCreditScores
	scorer    CreditScorer
	minScore  float64
}

// CreditOption configures a ThresholdCreditProvider.
type CreditOption func(*ThresholdCreditProvider)

// WithCustomerLimit sets a per-customer credit limit.
func WithCustomerLimit(customer string, limit decimal.Decimal) CreditOption {
	return func(p *ThresholdCreditProvider) { p.limits[customer] = limit }
}

// WithCustomerScore records the credit score of customer in the built-in score table.
func WithCustomerScore(customer string, score float64) CreditOption {
	return func(p *ThresholdCreditProvider) { p.scores[customer] = score }
}

// WithCreditScorer replaces the built-in score table, e.g. with a bureau client.
func WithCreditScorer(scorer CreditScorer) CreditOption {
	return func(p *ThresholdCreditProvider) { p.scorer = scorer }
}

// WithMinCreditScore sets the score below which an over-threshold order fails.
func WithMinCreditScore(score float64) CreditOption {
	return func(p *ThresholdCreditProvider) { p.minScore = score }
}

// NewThresholdCreditProvider falls back to DefaultCreditThreshold when threshold is not positive.
func NewThresholdCreditProvider(threshold decimal.Decimal, opts ...CreditOption) *ThresholdCreditProvider {
	if !threshold.IsPositive() {
		threshold = DefaultCreditThreshold
	}
	p := &ThresholdCreditProvider{
		threshold: threshold,
		limits:    make(map[string]decimal.Decimal),
		scores:    make(StaticCreditScores),
		minScore:  DefaultMinCreditScore,
	}
	p.scorer = p.scores
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckCredit returns the scorer's error unchanged so that the pipeline can
// report the check as Indeterminate.
func (p *ThresholdCreditProvider) CheckCredit(ctx context.Context, customer string, amount decimal.Decimal) (validation.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return validation.Outcome{}, err
	}

	limit, ok := p.limits[customer]
	if !ok {
		limit = p.threshold
	}
	if !amount.GreaterThan(limit) {
		return validation.Passed(), nil
	}

	score, err := p.scorer.CreditScore(ctx, customer)
	if err != nil {
		return validation.Outcome{}, err
	}
	if score < p.minScore {
		return validation.Failed(fmt.Sprintf(
			"Customer failed automated credit check: order total %s exceeds credit limit %s and credit score %.2f is below %.2f.",
			amount.StringFixed(2), limit.StringFixed(2), score, p.minScore)), nil
	}
	return validation.Passed(), nil
}
