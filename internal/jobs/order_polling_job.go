package jobs

import (
	"context"
	"log/slog"
	"time"

	"brewride/internal/core/ports"
	"brewride/internal/tracking"

	"github.com/robfig/cron/v3"
)

// OrderPollingJob republishes every active order row to the tracking hub on
// a fixed interval. Polling is the reliability floor under the broker feed:
// a subscriber that missed a change notification catches up on the next
// poll, at the cost of latency.
type OrderPollingJob struct {
	orders ports.OrderRepository
	hub    *tracking.Hub
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderPollingJob creates a polling job over the order repository.
func NewOrderPollingJob(orders ports.OrderRepository, hub *tracking.Hub, logger *slog.Logger) *OrderPollingJob {
	return &OrderPollingJob{
		orders: orders,
		hub:    hub,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_polling_job"),
	}
}

// Start begins polling every four seconds.
func (j *OrderPollingJob) Start() error {
	_, err := j.cron.AddFunc("*/4 * * * * *", func() {
		ctx := context.Background()

		active, err := j.orders.GetAllActive(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order polling job failed", "error", err)
			return
		}

		observedAt := time.Now().UTC()
		for _, aggregate := range active {
			j.hub.PublishOrder(aggregate, observedAt)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order polling job started (running every four seconds)")
	return nil
}

// Stop stops the polling job.
func (j *OrderPollingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order polling job stopped")
}
