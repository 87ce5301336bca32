package commands

import (
	"context"
	"errors"
	"log/slog"

	"brewride/internal/core/domain/model/rider"
	"brewride/internal/core/ports"
)

// ErrOrderUnavailable is returned when a conditional status write finds the
// order already moved on: another rider claimed it, a concurrent confirmation
// completed it, or a position report raced a status change. Clients should
// re-sync to the authoritative order on this error rather than retry.
var ErrOrderUnavailable = errors.New("order is no longer available")

// AcceptOrderCommandHandler assigns an approved order to a rider. The race
// between riders claiming the same order is resolved by the repository's
// conditional write: the update only commits if the row is still approved,
// so exactly one rider wins and every loser gets ErrOrderUnavailable.
type AcceptOrderCommandHandler struct {
	uowFactory UoWFactory
	notifier   notifier
}

// NewAcceptOrderCommandHandler creates a handler for rider order acceptance.
// Requires the cross-aggregate UoWFactory because the rider's account status
// is checked in the same transaction as the claim.
func NewAcceptOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   newNotifier(publisher, logger),
	}
}

// Handle processes the acceptance command. Verifies the rider's account is
// approved for fleet work, then attempts the conditional claim. A claim that
// finds the order no longer approved returns ErrOrderUnavailable; the caller
// must re-sync and must not retry.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	claimant, err := uow.RiderRepository().Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if !claimant.IsApproved() {
		return rider.ErrRiderNotApproved
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Accept(ctx, cmd.OrderID(), cmd.RiderID()); err != nil {
		if errors.Is(err, ports.ErrStatusPreconditionFailed) {
			return ErrOrderUnavailable
		}
		return err
	}

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.orderChanged(ctx, aggregate)
	return nil
}
