// Package jobs provides scheduled background tasks over the inventory ledger.
//
// Jobs are cron based (github.com/robfig/cron/v3, seconds field enabled) and
// read the ledger through the stock level projection, so they never hold a row
// lock.
//
// # Available Jobs
//
// 1. InventoryAuditJob - logs every row where allocated exceeds on hand (or either
// is negative) at Error level and reports the count as a gauge
// 2. ReplenishmentAlertJob - logs SKUs that are Low (Info) or OutOfStock (Warn)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(stockLevelsHandler, metrics, jobs.Schedules{}, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A breach found by the audit is not an error of the job; it is a finding
// - Failed job starts will stop any already running jobs
package jobs
