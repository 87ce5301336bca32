package commands

import (
	"context"
	"log/slog"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/services"
	"brewride/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order placement.
// Computes the delivery fee from the cafe's straight-line distance to the
// delivery point and freezes it into the new order, which starts in
// "pending" status awaiting admin review.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing, cafe, publisher, logger)
//	cmd, _ := NewCreateOrderCommand(orderID, customerID, customer, dest, "Latte", 1, 4.50)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	pricing      services.FeeCalculator
	cafeLocation kernel.GeoPoint
	notifier     notifier
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence, the fee
// calculator, and the cafe's fixed location for fee computation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.FeeCalculator,
	cafeLocation kernel.GeoPoint,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory:   uowFactory,
		pricing:      pricing,
		cafeLocation: cafeLocation,
		notifier:     newNotifier(publisher, logger),
	}
}

// Handle processes the order placement command.
// Computes and freezes the delivery fee, creates the order in "pending"
// status, and persists it transactionally. Emits a change notification
// after commit.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	deliveryFee := h.pricing.DeliveryFee(h.cafeLocation, cmd.DeliveryPoint())

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.Customer(),
		cmd.DeliveryPoint(),
		cmd.ItemName(),
		cmd.Quantity(),
		cmd.TotalPrice(),
		deliveryFee,
		time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.orderChanged(ctx, aggregate)
	return nil
}
