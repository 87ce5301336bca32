package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/model/rider"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"
)

// CompleteOrderCommandHandler finalizes a delivered order. The transition
// and the archival record are committed in one transaction; the rider's
// lifetime stats accrue afterwards in a separate, best-effort write.
//
// If the stats write fails the order stays completed and the archival record
// stays in place. The failure is logged and the period figures remain
// correct because they are recomputed from the archive at read time.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
	logger     *slog.Logger
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
// Requires the cross-aggregate UoWFactory because completion touches the
// order row, the archive, and the rider stats.
func NewCompleteOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
		logger:     logger.With("component", "complete_order"),
	}
}

// Handle processes the completion command. The domain transition checks
// ownership and that the order is delivered; the repository's conditional
// write makes the operation idempotent, so a duplicate confirmation can
// never double-archive or double-count stats.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.Complete(cmd.CustomerID()); err != nil {
		return err
	}

	if err = orderRepo.CompleteIfDelivered(ctx, cmd.OrderID()); err != nil {
		if errors.Is(err, ports.ErrStatusPreconditionFailed) {
			return ErrOrderUnavailable
		}
		return err
	}

	completedAt := time.Now().UTC()
	record, err := aggregate.CompletedRecord(completedAt)
	if err != nil {
		return err
	}

	if err = uow.CompletedOrderRepository().Add(ctx, record); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.orderChanged(ctx, aggregate)
	h.accrueStats(ctx, record)
	return nil
}

// accrueStats updates the rider's lifetime counters in its own transaction
// after the completion commit. Errors are logged, never surfaced: the
// archive is the source of truth and the counters can be rebuilt from it.
func (h *CompleteOrderCommandHandler) accrueStats(ctx context.Context, record order.CompletedOrder) {
	err := h.applyStats(ctx, record)
	if err != nil {
		h.logger.WarnContext(ctx, "rider stats update failed",
			"order_id", record.OrderID().String(),
			"rider_id", record.RiderID().String(),
			"error", err)
	}
}

func (h *CompleteOrderCommandHandler) applyStats(ctx context.Context, record order.CompletedOrder) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	statsRepo := uow.RiderStatsRepository()
	stats, err := statsRepo.Get(ctx, record.RiderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		stats, err = rider.NewStats(record.RiderID())
	}
	if err != nil {
		return err
	}

	if err = stats.ApplyDelivery(record.TotalPrice(), record.CompletedAt()); err != nil {
		return err
	}

	if err = statsRepo.Save(ctx, stats); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
