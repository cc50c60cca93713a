package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
)

// Schedules holds the cron specs, with a seconds field. Empty values use the defaults.
type Schedules struct {
	Audit         string
	Replenishment string
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	auditJob         *InventoryAuditJob
	replenishmentJob *ReplenishmentAlertJob
}

// NewJobManager wires both ledger jobs to the stock level projection.
func NewJobManager(
	stockLevels queries.GetStockLevelsQueryHandler,
	metrics ports.Metrics,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		auditJob:         NewInventoryAuditJob(stockLevels, metrics, schedules.Audit, logger),
		replenishmentJob: NewReplenishmentAlertJob(stockLevels, schedules.Replenishment, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.auditJob.Start(); err != nil {
		return fmt.Errorf("failed to start inventory audit job: %w", err)
	}

	if err := jm.replenishmentJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.auditJob.Stop()
		return fmt.Errorf("failed to start replenishment alert job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running passes to finish.
func (jm *JobManager) StopAll() {
	jm.replenishmentJob.Stop()
	jm.auditJob.Stop()
}
