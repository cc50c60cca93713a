package services

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/ports"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultCheckTimeout bounds one check, not the whole pipeline.
	DefaultCheckTimeout = 2 * time.Second
	tracerName          = "fulfillment/validation"
)

// CheckInput is what every check sees: the order and a snapshot of the ledger rows it touches.
type CheckInput struct {
	Order *order.Order
	// Stock is keyed by SKU. SKUs with no ledger row are absent.
	Stock map[string]*inventory.StockItem
}

// Check is one pipeline stage. Returning an error means the check could not decide.
// A check must not mutate in; the pipeline may abandon it on timeout while
// it is still running.
type Check interface {
	// Name identifies the row of the report.
	Name() validation.CheckName

	// Evaluate decides the check. ctx carries the per-check deadline.
	Evaluate(ctx context.Context, in CheckInput) (validation.Outcome, error)
}

// ValidationPipeline runs its checks strictly in order for one order and stops
// at the first Fail or Indeterminate. It holds no per-run state and may be
// shared by concurrent validations of different orders.
type ValidationPipeline struct {
	checks  []Check
	timeout time.Duration
	tracer  trace.Tracer
	metrics ports.Metrics
}

// PipelineOption configures a ValidationPipeline.
type PipelineOption func(*ValidationPipeline)

// WithTracer records one span per run and one child span per check.
// The global tracer provider is used otherwise.
func WithTracer(tracer trace.Tracer) PipelineOption {
	return func(p *ValidationPipeline) { p.tracer = tracer }
}

// WithMetrics reports every executed check. ports.NopMetrics is used otherwise.
func WithMetrics(metrics ports.Metrics) PipelineOption {
	return func(p *ValidationPipeline) { p.metrics = metrics }
}

// NewValidationPipeline builds a pipeline; a non-positive timeout selects DefaultCheckTimeout.
//
// Parameters:
//   - timeout: deadline of each check
//   - checks: run in the given order, usually StandardChecks
//   - opts: tracer and metrics
//
// Example:
//
//	pipeline := services.NewValidationPipeline(cfg.CheckTimeout,
//	    services.StandardChecks(credit, compliance),
//	    services.WithMetrics(metrics))
func NewValidationPipeline(timeout time.Duration, checks []Check, opts ...PipelineOption) *ValidationPipeline {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	p := &ValidationPipeline{
		checks:  append([]Check(nil), checks...),
		timeout: timeout,
		tracer:  otel.Tracer(tracerName),
		metrics: ports.NopMetrics{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run validates in.Order. The report lists every configured check; those after
// the first non-passing one stay NotRun. Run has no side effects, so a
// cancelled run can simply be retried.
func (p *ValidationPipeline) Run(ctx context.Context, in CheckInput) validation.Report {
	ctx, span := p.tracer.Start(ctx, "validation.pipeline",
		trace.WithAttributes(attribute.String("order.id", in.Order.ID().String())))
	defer span.End()

	report := validation.Report{OrderID: in.Order.ID(), Results: make([]validation.CheckResult, len(p.checks))}
	for i, check := range p.checks {
		report.Results[i] = validation.CheckResult{Check: check.Name(), Verdict: validation.NotRun}
	}

	for i, check := range p.checks {
		result := p.runCheck(ctx, check, in)
		report.Results[i] = result
		p.metrics.CheckCompleted(result.Check, result.Verdict, result.Duration)
		if result.Verdict != validation.Pass {
			span.SetStatus(codes.Error, fmt.Sprintf("%s: %s", result.Check, result.Verdict))
			break
		}
	}
	span.SetAttributes(attribute.Bool("validation.passed", report.Passed()))
	return report
}

type checkReply struct {
	outcome validation.Outcome
	err     error
}

// runCheck evaluates one check in its own goroutine so that a check which
// ignores its context still cannot hold the pipeline past the timeout.
// A panic is reported as Indeterminate.
func (p *ValidationPipeline) runCheck(ctx context.Context, check Check, in CheckInput) validation.CheckResult {
	ctx, span := p.tracer.Start(ctx, "validation.check",
		trace.WithAttributes(attribute.String("check.name", string(check.Name()))))
	defer span.End()

	started := time.Now()
	checkCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	replies := make(chan checkReply, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				replies <- checkReply{err: fmt.Errorf("check panicked: %v", r)}
			}
		}()
		outcome, err := check.Evaluate(checkCtx, in)
		replies <- checkReply{outcome: outcome, err: err}
	}()

	var outcome validation.Outcome
	select {
	case reply := <-replies:
		outcome = normalize(check.Name(), reply)
	case <-checkCtx.Done():
		if ctx.Err() != nil {
			outcome = validation.Undetermined("validation cancelled: " + ctx.Err().Error())
		} else {
			outcome = validation.Undetermined(fmt.Sprintf("check timed out after %s", p.timeout))
		}
	}

	span.SetAttributes(attribute.String("check.verdict", outcome.Verdict.String()))
	return validation.CheckResult{
		Check:    check.Name(),
		Verdict:  outcome.Verdict,
		Reasons:  outcome.Reasons,
		Duration: time.Since(started),
	}
}

// normalize never lets an error or an empty verdict pass.
func normalize(name validation.CheckName, reply checkReply) validation.Outcome {
	if reply.err != nil {
		return validation.Undetermined(reply.err.Error())
	}
	switch reply.outcome.Verdict {
	case validation.Pass:
		return validation.Passed()
	case validation.Fail:
		if len(reply.outcome.Reasons) == 0 {
			return validation.Failed(fmt.Sprintf("%s failed", name))
		}
		return reply.outcome
	case validation.Indeterminate:
		if len(reply.outcome.Reasons) == 0 {
			return validation.Undetermined(fmt.Sprintf("%s could not decide", name))
		}
		return reply.outcome
	default:
		return validation.Undetermined(fmt.Sprintf("%s returned no verdict", name))
	}
}
