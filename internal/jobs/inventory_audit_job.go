package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultAuditSchedule runs the audit once a minute.
const DefaultAuditSchedule = "0 * * * * *"

// InventoryAuditJob scans the ledger for rows breaking 0 <= allocated <= onHand.
// Breaches are reported, never corrected: the remedy is an operator decision.
type InventoryAuditJob struct {
	handler  queries.GetStockLevelsQueryHandler
	metrics  ports.Metrics
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewInventoryAuditJob creates a stopped job. An empty schedule selects
// DefaultAuditSchedule; schedules use the six-field cron format with seconds.
func NewInventoryAuditJob(
	handler queries.GetStockLevelsQueryHandler,
	metrics ports.Metrics,
	schedule string,
	logger *slog.Logger,
) *InventoryAuditJob {
	if schedule == "" {
		schedule = DefaultAuditSchedule
	}
	return &InventoryAuditJob{
		handler:  handler,
		metrics:  metrics,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "inventory_audit_job"),
	}
}

// Run performs one audit pass and returns the number of violating rows.
func (j *InventoryAuditJob) Run(ctx context.Context) (int, error) {
	view, err := j.handler.Handle(ctx, queries.NewGetStockLevelsQuery())
	if err != nil {
		return 0, err
	}

	violations := 0
	for _, row := range view.Items {
		if row.InvariantViolation == "" {
			continue
		}
		violations++
		j.logger.ErrorContext(ctx, "Inventory invariant violation",
			"sku", row.SKU,
			"onHand", row.OnHand,
			"allocated", row.Allocated,
			"detail", row.InvariantViolation,
		)
	}

	j.metrics.InvariantViolations(violations)
	if violations == 0 {
		j.logger.DebugContext(ctx, "Inventory audit clean", "items", len(view.Items))
	}
	return violations, nil
}

// Start registers the schedule and starts the cron scheduler. A failed pass
// is logged and the next tick runs as usual.
func (j *InventoryAuditJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Inventory audit failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Inventory audit job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *InventoryAuditJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Inventory audit job stopped")
}
