package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/validation"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func verdicts(r validation.Report) []validation.Verdict {
	out := make([]validation.Verdict, 0, len(r.Results))
	for _, res := range r.Results {
		out = append(out, res.Verdict)
	}
	return out
}

func TestValidationPipeline_StandardChecks(t *testing.T) {
	t.Run("all checks pass", func(t *testing.T) {
		// Given
		o := newOrder(t, "SO-1", order.Normal, lineSpec{"ELEC-001", 20})
		credit := &creditProviderMock{}
		credit.On("CheckCredit", mock.Anything, "PT Sentosa",
			mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(20000)) })).
			Return(validation.Passed(), nil).Once()
		compliance := &complianceProviderMock{}
		compliance.On("CheckCompliance", mock.Anything, "PT Sentosa", order.Normal, "Jakarta").
			Return(validation.Passed(), nil).Once()
		pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(credit, compliance))

		// When
		report := pipeline.Run(context.Background(),
			services.CheckInput{Order: o, Stock: stockOf(item("ELEC-001", 150, 0))})

		// Then
		assert.True(t, report.Passed())
		assert.Equal(t, []validation.Verdict{validation.Pass, validation.Pass, validation.Pass}, verdicts(report))
		credit.AssertExpectations(t)
		compliance.AssertExpectations(t)
	})

	t.Run("inventory failure lists every shortfall and skips later checks", func(t *testing.T) {
		// Given
		o := newOrder(t, "SO-2", order.Critical,
			lineSpec{"ELEC-001", 200}, lineSpec{"GONE-1", 1}, lineSpec{"ACC-088", 400})
		credit := &creditProviderMock{}
		compliance := &complianceProviderMock{}
		pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(credit, compliance))

		// When
		report := pipeline.Run(context.Background(), services.CheckInput{
			Order: o,
			Stock: stockOf(item("ELEC-001", 150, 0), item("ACC-088", 500, 120)),
		})

		// Then
		assert.False(t, report.Passed())
		assert.Equal(t, []validation.Verdict{validation.Fail, validation.NotRun, validation.NotRun}, verdicts(report))
		assert.Equal(t, []string{
			"Insufficient stock for Name ELEC-001. Need 200, Available 150.",
			"SKU not found: GONE-1",
			"Insufficient stock for Name ACC-088. Need 400, Available 380.",
		}, report.Results[0].Reasons)
		credit.AssertNotCalled(t, "CheckCredit", mock.Anything, mock.Anything, mock.Anything)
		compliance.AssertNotCalled(t, "CheckCompliance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

		var failed *validation.ValidationFailedError
		require.ErrorAs(t, report.Err(), &failed)
		assert.Len(t, failed.Reasons, 3)
	})

	t.Run("provider error is indeterminate, never pass", func(t *testing.T) {
		o := newOrder(t, "SO-3", order.Normal, lineSpec{"ELEC-001", 1})
		credit := &creditProviderMock{}
		credit.On("CheckCredit", mock.Anything, mock.Anything, mock.Anything).
			Return(validation.Outcome{}, errors.New("credit bureau unreachable"))
		compliance := &complianceProviderMock{}
		pipeline := services.NewValidationPipeline(time.Second, services.StandardChecks(credit, compliance))

		report := pipeline.Run(context.Background(),
			services.CheckInput{Order: o, Stock: stockOf(item("ELEC-001", 10, 0))})

		assert.Equal(t, []validation.Verdict{validation.Pass, validation.Indeterminate, validation.NotRun}, verdicts(report))
		assert.Equal(t, []string{"credit bureau unreachable"}, report.Results[1].Reasons)
		assert.ErrorIs(t, report.Err(), validation.ErrIndeterminate)
	})
}

func TestValidationPipeline_Timeout(t *testing.T) {
	// Given
	o := newOrder(t, "SO-4", order.Normal, lineSpec{"ELEC-001", 1})
	slow := funcCheck{name: validation.CreditCheck, fn: func(ctx context.Context) (validation.Outcome, error) {
		time.Sleep(200 * time.Millisecond)
		return validation.Passed(), nil
	}}
	pipeline := services.NewValidationPipeline(20*time.Millisecond, []services.Check{slow})

	// When
	started := time.Now()
	report := pipeline.Run(context.Background(), services.CheckInput{Order: o})

	// Then
	assert.Less(t, time.Since(started), 150*time.Millisecond, "the pipeline does not wait for a slow check")
	assert.Equal(t, validation.Indeterminate, report.Results[0].Verdict)
	assert.Contains(t, report.Results[0].Reasons[0], "timed out")
}

func TestValidationPipeline_Cancellation(t *testing.T) {
	o := newOrder(t, "SO-5", order.Normal, lineSpec{"ELEC-001", 1})
	blocking := funcCheck{name: validation.CreditCheck, fn: func(ctx context.Context) (validation.Outcome, error) {
		<-ctx.Done()
		return validation.Outcome{}, ctx.Err()
	}}
	never := funcCheck{name: validation.ComplianceCheck, fn: func(context.Context) (validation.Outcome, error) {
		t.Error("must not run after cancellation")
		return validation.Passed(), nil
	}}
	pipeline := services.NewValidationPipeline(time.Minute, []services.Check{blocking, never})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	report := pipeline.Run(ctx, services.CheckInput{Order: o})

	assert.Equal(t, []validation.Verdict{validation.Indeterminate, validation.NotRun}, verdicts(report))
}

func TestValidationPipeline_NormalizesBadOutcomes(t *testing.T) {
	o := newOrder(t, "SO-6", order.Normal, lineSpec{"ELEC-001", 1})

	cases := map[string]struct {
		outcome validation.Outcome
		verdict validation.Verdict
	}{
		"empty verdict":            {validation.Outcome{}, validation.Indeterminate},
		"fail without reason":      {validation.Outcome{Verdict: validation.Fail}, validation.Fail},
		"indeterminate w/o reason": {validation.Outcome{Verdict: validation.Indeterminate}, validation.Indeterminate},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			check := funcCheck{name: validation.ComplianceCheck, fn: func(context.Context) (validation.Outcome, error) {
				return tc.outcome, nil
			}}

			report := services.NewValidationPipeline(time.Second, []services.Check{check}).
				Run(context.Background(), services.CheckInput{Order: o})

			assert.Equal(t, tc.verdict, report.Results[0].Verdict)
			assert.NotEmpty(t, report.Results[0].Reasons)
		})
	}

	t.Run("panic is indeterminate", func(t *testing.T) {
		check := funcCheck{name: validation.CreditCheck, fn: func(context.Context) (validation.Outcome, error) {
			panic("boom")
		}}

		report := services.NewValidationPipeline(time.Second, []services.Check{check}).
			Run(context.Background(), services.CheckInput{Order: o})

		assert.Equal(t, validation.Indeterminate, report.Results[0].Verdict)
	})
}

func TestValidationPipeline_ConcurrentOrders(t *testing.T) {
	pipeline := services.NewValidationPipeline(time.Second, []services.Check{services.NewInventoryAvailabilityCheck()})
	stock := stockOf(item("ELEC-001", 100, 0))

	orders := make([]*order.Order, 10)
	for i := range orders {
		orders[i] = newOrder(t, "SO-C", order.Normal, lineSpec{"ELEC-001", 10 + i*10})
	}

	done := make(chan validation.Report, len(orders))
	for _, o := range orders {
		go func() {
			done <- pipeline.Run(context.Background(), services.CheckInput{Order: o, Stock: stock})
		}()
	}

	passed := 0
	for range 10 {
		if (<-done).Passed() {
			passed++
		}
	}
	assert.Equal(t, 10, passed, "validation only reads the ledger; every order up to 100 units passes")
}
