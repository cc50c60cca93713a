package checks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// ErrCircuitOpen is returned while a provider's breaker rejects calls. The
// pipeline reports it as Indeterminate.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Defaults of DefaultBreakerConfig.
const (
	DefaultMaxRequests      uint32 = 1
	DefaultInterval                = time.Minute
	DefaultOpenTimeout             = 30 * time.Second
	DefaultFailureThreshold uint32 = 5
)

// BreakerConfig tunes one circuit breaker.
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32        // requests allowed in half-open state
	Interval         time.Duration // cyclic period of the closed state for clearing counts
	Timeout          time.Duration // how long the breaker stays open
	FailureThreshold uint32        // consecutive failures that trip the breaker
}

// DefaultBreakerConfig trips after five consecutive provider errors and
// lets one trial call through after thirty seconds.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      DefaultMaxRequests,
		Interval:         DefaultInterval,
		Timeout:          DefaultOpenTimeout,
		FailureThreshold: DefaultFailureThreshold,
	}
}

// breaker counts provider errors only. A Failed outcome is an answer, not a failure.
type breaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// newBreaker wraps a gobreaker circuit and logs every state change.
func newBreaker(cfg BreakerConfig, logger *slog.Logger) *breaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &breaker{cb: gobreaker.NewCircuitBreaker(settings), name: cfg.Name}
}

// execute runs fn through the breaker. Rejected calls return ErrCircuitOpen.
func (b *breaker) execute(fn func() (validation.Outcome, error)) (validation.Outcome, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return validation.Outcome{}, fmt.Errorf("%w: %s", ErrCircuitOpen, b.name)
	}
	if err != nil {
		return validation.Outcome{}, err
	}
	return result.(validation.Outcome), nil
}

// State exposes the breaker state for tests and health reporting.
func (b *breaker) State() gobreaker.State {
	return b.cb.State()
}

// CreditBreaker guards a CreditCheckProvider.
type CreditBreaker struct {
	*breaker
	next ports.CreditCheckProvider
}

// NewCreditBreaker wraps next.
func NewCreditBreaker(next ports.CreditCheckProvider, cfg BreakerConfig, logger *slog.Logger) *CreditBreaker {
	return &CreditBreaker{breaker: newBreaker(cfg, logger), next: next}
}

// CheckCredit delegates to the wrapped provider unless the breaker is open.
func (b *CreditBreaker) CheckCredit(ctx context.Context, customer string, amount decimal.Decimal) (validation.Outcome, error) {
	return b.execute(func() (validation.Outcome, error) {
		return b.next.CheckCredit(ctx, customer, amount)
	})
}

// ComplianceBreaker guards a ComplianceCheckProvider.
type ComplianceBreaker struct {
	*breaker
	next ports.ComplianceCheckProvider
}

// NewComplianceBreaker wraps next.
func NewComplianceBreaker(next ports.ComplianceCheckProvider, cfg BreakerConfig, logger *slog.Logger) *ComplianceBreaker {
	return &ComplianceBreaker{breaker: newBreaker(cfg, logger), next: next}
}

// CheckCompliance delegates to the wrapped provider unless the breaker is open.
func (b *ComplianceBreaker) CheckCompliance(
	ctx context.Context,
	customer string,
	priority order.Priority,
	destination string,
) (validation.Outcome, error) {
	return b.execute(func() (validation.Outcome, error) {
		return b.next.CheckCompliance(ctx, customer, priority, destination)
	})
}
