package jobs

import (
	"fmt"
	"log/slog"

	"brewride/internal/core/ports"
	"brewride/internal/tracking"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderPollingJob *OrderPollingJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	orders ports.OrderRepository,
	hub *tracking.Hub,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderPollingJob: NewOrderPollingJob(orders, hub, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderPollingJob.Start(); err != nil {
		return fmt.Errorf("failed to start order polling job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderPollingJob.Stop()
}
