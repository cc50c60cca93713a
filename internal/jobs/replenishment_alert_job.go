package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/inventory"

	"github.com/robfig/cron/v3"
)

// DefaultReplenishmentSchedule runs the alert every five minutes.
const DefaultReplenishmentSchedule = "0 */5 * * * *"

// ReplenishmentAlertJob warns about SKUs at or below their reorder point.
type ReplenishmentAlertJob struct {
	handler  queries.GetStockLevelsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReplenishmentAlertJob creates a stopped job. An empty schedule selects
// DefaultReplenishmentSchedule.
func NewReplenishmentAlertJob(handler queries.GetStockLevelsQueryHandler, schedule string, logger *slog.Logger) *ReplenishmentAlertJob {
	if schedule == "" {
		schedule = DefaultReplenishmentSchedule
	}
	return &ReplenishmentAlertJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "replenishment_alert_job"),
	}
}

// Run logs every Low or OutOfStock SKU and returns them.
func (j *ReplenishmentAlertJob) Run(ctx context.Context) ([]string, error) {
	view, err := j.handler.Handle(ctx, queries.NewGetStockLevelsQuery())
	if err != nil {
		return nil, err
	}

	var skus []string
	for _, row := range view.Items {
		if !row.NeedsReplenishment {
			continue
		}
		skus = append(skus, row.SKU)

		attrs := []any{
			"sku", row.SKU,
			"available", row.Available,
			"reorderPoint", row.ReorderPoint,
			"location", row.Location,
		}
		if row.Level == inventory.OutOfStock.String() {
			j.logger.WarnContext(ctx, "SKU out of stock", attrs...)
		} else {
			j.logger.InfoContext(ctx, "SKU below reorder point", attrs...)
		}
	}
	return skus, nil
}

// Start registers the schedule and starts the cron scheduler.
func (j *ReplenishmentAlertJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Replenishment alert failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Replenishment alert job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running pass to finish.
func (j *ReplenishmentAlertJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Replenishment alert job stopped")
}
