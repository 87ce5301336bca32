package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents the customer confirming receipt of a
// delivered order, finalizing the lifecycle.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to finalize a delivered order
// on behalf of the identified customer.
func NewCompleteOrderCommand(orderID kernel.UUID, customerID kernel.UUID) (CompleteOrderCommand, error) {
	completeCommand := CompleteOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setCustomerID(customerID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the order to finalize.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the confirming customer.
func (c CompleteOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}
