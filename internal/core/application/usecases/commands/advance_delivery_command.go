package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/guard"
)

var (
	ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
		"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
	)
	ErrStageIsInvalid = errors.New("stage must be picked_up or delivered")
)

// AdvanceDeliveryCommand represents the assigned rider advancing an order
// through its delivery milestones: picked up from the cafe, then delivered
// to the customer's address.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	riderID kernel.UUID
	stage   order.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand creates a command to record a delivery milestone.
// stage must be order.PickedUp or order.Delivered; each milestone can only
// follow its predecessor, which the domain transition enforces.
func NewAdvanceDeliveryCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	stage order.Status,
) (AdvanceDeliveryCommand, error) {
	advanceCommand := AdvanceDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		advanceCommand.setOrderID(orderID),
		advanceCommand.setRiderID(riderID),
		advanceCommand.setStage(stage),
	); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return advanceCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

// OrderID returns the order being advanced.
func (c AdvanceDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the rider reporting the milestone.
func (c AdvanceDeliveryCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Stage returns the milestone being recorded.
func (c AdvanceDeliveryCommand) Stage() order.Status {
	return c.stage
}

func (c *AdvanceDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AdvanceDeliveryCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *AdvanceDeliveryCommand) setStage(stage order.Status) error {
	if stage != order.PickedUp && stage != order.Delivered {
		return ErrStageIsInvalid
	}

	c.stage = stage
	return nil
}
