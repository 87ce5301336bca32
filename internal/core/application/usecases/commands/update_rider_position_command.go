package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var ErrUpdateRiderPositionCommandIsNotConstructed = errors.New(
	"UpdateRiderPositionCommand must be created via NewUpdateRiderPositionCommand constructor",
)

// UpdateRiderPositionCommand represents the assigned rider reporting their
// live position while an order is in transit.
type UpdateRiderPositionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	riderID  kernel.UUID
	position kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderPositionCommand creates a command carrying a position report
// for an in-transit order.
func NewUpdateRiderPositionCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	position kernel.GeoPoint,
) (UpdateRiderPositionCommand, error) {
	positionCommand := UpdateRiderPositionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		positionCommand.setOrderID(orderID),
		positionCommand.setRiderID(riderID),
		positionCommand.setPosition(position),
	); err != nil {
		return UpdateRiderPositionCommand{}, err
	}

	return positionCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderPositionCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderPositionCommandIsNotConstructed)
}

// OrderID returns the order being tracked.
func (c UpdateRiderPositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the reporting rider.
func (c UpdateRiderPositionCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Position returns the reported coordinates.
func (c UpdateRiderPositionCommand) Position() kernel.GeoPoint {
	return c.position
}

func (c *UpdateRiderPositionCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateRiderPositionCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *UpdateRiderPositionCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}
