package commands

import (
	"context"
	"log/slog"

	"brewride/internal/core/ports"
)

// ReviewOrderCommandHandler applies an admin review decision to a pending
// order. Approval makes the order visible to riders; rejection is terminal.
type ReviewOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewReviewOrderCommandHandler creates a handler for admin order review.
func NewReviewOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ReviewOrderCommandHandler {
	return ReviewOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle processes the review command. Loads the order, applies the decision
// through the domain transition (only a pending order can be reviewed), and
// persists the result transactionally.
func (h *ReviewOrderCommandHandler) Handle(ctx context.Context, cmd ReviewOrderCommand) error {
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

	if cmd.Approve() {
		err = aggregate.Approve()
	} else {
		err = aggregate.Reject()
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
