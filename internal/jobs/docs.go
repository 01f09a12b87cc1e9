// Package jobs provides scheduled background tasks for the parcel service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. ReconciliationJob - scans the stores for cross-store inconsistencies
// left behind by partially applied workflows and logs each one for operators
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(
//		jobs.NewReconciliationJob(findInconsistenciesHandler, config.ReconcileSchedule, logger),
//	)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are cron expressions with a leading seconds field, or
// descriptors such as "@every 5m". The reconciliation scan defaults to once
// a minute.
//
// # Error Handling
//
// - The reconciliation scan only reports; it never repairs data
// - A failed scan is logged and retried on the next tick
// - Failed job starts will stop any already running jobs
package jobs
