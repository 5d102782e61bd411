// Package jobs provides scheduled background tasks for the delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the delivery service.
//
// # Available Jobs
//
// 1. TrackingJob - Runs every ten seconds to advance out-for-delivery orders
// and dispatch prepared ones.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with the tracking ticker
//	jobManager := jobs.NewJobManager(tracker, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The tracking job uses the cron expression "*/10 * * * * *", firing every
// ten seconds. A tick that is still running when the next fires is skipped
// rather than overlapped.
//
// # Error Handling
//
// Tick errors are logged and the schedule continues. A panicking tick is
// recovered and the job backs off for five seconds before ticking again.
package jobs
