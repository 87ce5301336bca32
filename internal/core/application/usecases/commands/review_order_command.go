package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var ErrReviewOrderCommandIsNotConstructed = errors.New(
	"ReviewOrderCommand must be created via NewReviewOrderCommand constructor",
)

// ReviewOrderCommand represents an admin's decision on a pending order:
// approve it for rider pickup or reject it outright.
type ReviewOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	approve bool

	guard guard.ConstructorGuard
}

// NewReviewOrderCommand creates a command carrying an admin review decision.
// approve=true moves the order to "approved", approve=false to "rejected".
func NewReviewOrderCommand(orderID kernel.UUID, approve bool) (ReviewOrderCommand, error) {
	reviewCommand := ReviewOrderCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := reviewCommand.setOrderID(orderID); err != nil {
		return ReviewOrderCommand{}, err
	}

	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewOrderCommand) Validate() error {
	return c.guard.Validate(ErrReviewOrderCommandIsNotConstructed)
}

// OrderID returns the order under review.
func (c ReviewOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Approve reports whether the admin approved the order.
func (c ReviewOrderCommand) Approve() bool {
	return c.approve
}

func (c *ReviewOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}
