package commands

import (
	"context"
	"errors"
	"log/slog"

	"brewride/internal/core/ports"
)

// UpdateRiderPositionCommandHandler persists a rider's live position report.
// The row is the source of truth; the position cache is a fast-read mirror
// updated best-effort after commit, so a cache outage degrades tracking
// latency without losing positions.
type UpdateRiderPositionCommandHandler struct {
	uowFactory OrderUoWFactory
	cache      ports.PositionCache
	notifier   notifier
	logger     *slog.Logger
}

// NewUpdateRiderPositionCommandHandler creates a handler for rider position
// reports.
func NewUpdateRiderPositionCommandHandler(
	uowFactory OrderUoWFactory,
	cache ports.PositionCache,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateRiderPositionCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return UpdateRiderPositionCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		notifier:   newNotifier(publisher, logger),
		logger:     logger.With("component", "rider_position"),
	}
}

// Handle processes the position report. The domain rejects reports from
// anyone but the assigned rider and outside the accepted/picked_up window;
// the repository write re-checks both conditions on the row itself and only
// touches the position columns, so a report racing a status change cannot
// overwrite the newer row.
func (h *UpdateRiderPositionCommandHandler) Handle(ctx context.Context, cmd UpdateRiderPositionCommand) error {
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

	if err = aggregate.UpdateRiderPosition(cmd.RiderID(), cmd.Position()); err != nil {
		return err
	}

	if err = orderRepo.UpdatePosition(ctx, cmd.OrderID(), cmd.RiderID(), cmd.Position()); err != nil {
		if errors.Is(err, ports.ErrStatusPreconditionFailed) {
			return ErrOrderUnavailable
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if h.cache != nil {
		if err = h.cache.SetPosition(ctx, cmd.OrderID(), cmd.Position()); err != nil {
			h.logger.WarnContext(ctx, "position cache update failed",
				"order_id", cmd.OrderID().String(),
				"error", err)
		}
	}

	h.notifier.orderChanged(ctx, aggregate)
	return nil
}
