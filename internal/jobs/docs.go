// Package jobs provides scheduled background tasks for the delivery service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderPollingJob - Runs every four seconds to republish active order
// rows to the tracking hub. The hub's monotonic filter discards anything
// the broker feed already delivered, so the poll only fills gaps.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(orderRepository, hub, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Polling failures are logged and retried on the next tick; a transient
// database error costs one poll interval of staleness, nothing more.
package jobs
