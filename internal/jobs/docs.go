// Package jobs provides scheduled background tasks for the parcel
// service, implemented with github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StatsSnapshotJob - Runs daily at midnight to log a snapshot of the
// collection-wide parcel statistics (per-status counts, monthly revenue,
// average delivery time).
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(statsHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and the schedule keeps running; a failed
// snapshot is simply retried on the next tick.
package jobs
