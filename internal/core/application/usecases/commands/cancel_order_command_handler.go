package commands

import (
	"context"
	"log/slog"

	"brewride/internal/core/ports"
)

// CancelOrderCommandHandler withdraws an order for its owning customer.
// The domain transition enforces the window: only a pending or approved
// order can be cancelled, and only by the customer who placed it.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   notifier
}

// NewCancelOrderCommandHandler creates a handler for customer cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle processes the cancellation command transactionally.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = aggregate.Cancel(cmd.CustomerID()); err != nil {
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
