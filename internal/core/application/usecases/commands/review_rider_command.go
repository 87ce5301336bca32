package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var ErrReviewRiderCommandIsNotConstructed = errors.New(
	"ReviewRiderCommand must be created via NewReviewRiderCommand constructor",
)

// ReviewRiderCommand represents an admin's decision on a rider registration.
type ReviewRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	approve bool

	guard guard.ConstructorGuard
}

// NewReviewRiderCommand creates a command carrying an admin account decision.
func NewReviewRiderCommand(riderID kernel.UUID, approve bool) (ReviewRiderCommand, error) {
	reviewCommand := ReviewRiderCommand{
		approve: approve,
		guard:   guard.NewConstructorGuard(),
	}

	if err := reviewCommand.setRiderID(riderID); err != nil {
		return ReviewRiderCommand{}, err
	}

	return reviewCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewRiderCommand) Validate() error {
	return c.guard.Validate(ErrReviewRiderCommandIsNotConstructed)
}

// RiderID returns the rider under review.
func (c ReviewRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Approve reports whether the admin approved the rider's account.
func (c ReviewRiderCommand) Approve() bool {
	return c.approve
}

func (c *ReviewRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}
