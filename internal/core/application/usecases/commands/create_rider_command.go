package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var (
	ErrCreateRiderCommandIsNotConstructed = errors.New(
		"CreateRiderCommand must be created via NewCreateRiderCommand constructor",
	)
	ErrNameIsRequired    = errors.New("name is required")
	ErrPhoneIsRequired   = errors.New("phone is required")
	ErrVehicleIsRequired = errors.New("vehicle is required")
)

// CreateRiderCommand represents a rider's registration request. New riders
// start with a pending account and cannot claim orders until an admin
// approves them.
type CreateRiderCommand struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID
	name    string
	phone   string
	vehicle string

	guard guard.ConstructorGuard
}

// NewCreateRiderCommand creates a command to register a new rider.
func NewCreateRiderCommand(riderID kernel.UUID, name, phone, vehicle string) (CreateRiderCommand, error) {
	riderCommand := CreateRiderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		riderCommand.setRiderID(riderID),
		riderCommand.setName(name),
		riderCommand.setPhone(phone),
		riderCommand.setVehicle(vehicle),
	); err != nil {
		return CreateRiderCommand{}, err
	}

	return riderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRiderCommand) Validate() error {
	return c.guard.Validate(ErrCreateRiderCommandIsNotConstructed)
}

// RiderID returns the unique identifier for the rider.
func (c CreateRiderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Name returns the rider's display name.
func (c CreateRiderCommand) Name() string {
	return c.name
}

// Phone returns the rider's contact number.
func (c CreateRiderCommand) Phone() string {
	return c.phone
}

// Vehicle returns the rider's delivery vehicle description.
func (c CreateRiderCommand) Vehicle() string {
	return c.vehicle
}

func (c *CreateRiderCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	c.riderID = riderID
	return nil
}

func (c *CreateRiderCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateRiderCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	c.phone = phone
	return nil
}

func (c *CreateRiderCommand) setVehicle(vehicle string) error {
	if vehicle == "" {
		return ErrVehicleIsRequired
	}

	c.vehicle = vehicle
	return nil
}
