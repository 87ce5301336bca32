package commands

import (
	"context"
	"log/slog"

	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
)

// AdvanceDeliveryCommandHandler records delivery milestones reported by the
// assigned rider. Only that rider may advance the order, and milestones
// cannot be skipped: accepted must become picked_up before delivered.
type AdvanceDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery milestones.
func NewAdvanceDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle processes the milestone command transactionally.
func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) error {
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

	switch cmd.Stage() {
	case order.PickedUp:
		err = aggregate.MarkPickedUp(cmd.RiderID())
	case order.Delivered:
		err = aggregate.MarkDelivered(cmd.RiderID())
	default:
		err = ErrStageIsInvalid
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.orderChanged(ctx, aggregate)
	return nil
}
