package commands

import (
	"context"
)

// ReviewRiderCommandHandler applies an admin decision to a pending rider
// account. Only approved riders can claim orders.
type ReviewRiderCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewReviewRiderCommandHandler creates a handler for rider account review.
func NewReviewRiderCommandHandler(uowFactory RiderUoWFactory) ReviewRiderCommandHandler {
	return ReviewRiderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the account review command transactionally.
func (h *ReviewRiderCommandHandler) Handle(ctx context.Context, cmd ReviewRiderCommand) error {
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

	riderRepo := uow.RiderRepository()
	aggregate, err := riderRepo.Get(ctx, cmd.RiderID())
	if err != nil {
		return err
	}

	if cmd.Approve() {
		err = aggregate.Approve()
	} else {
		err = aggregate.RejectAccount()
	}
	if err != nil {
		return err
	}

	if err = riderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
