package commands

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemNameIsRequired  = errors.New("item name is required")
	ErrQuantityIsInvalid   = errors.New("quantity must be greater than 0")
	ErrTotalPriceIsInvalid = errors.New("total price must be greater than 0")
)

// CreateOrderCommand represents a customer's request to place a new coffee
// order. Encapsulates the purchased item, contact details, and the delivery
// destination; the delivery fee is computed by the handler, not the caller.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, customerID, customer, dest, "Flat White", 2, 9.50)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, pricing, cafe, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s placed and awaiting admin review", orderID)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	customerID    kernel.UUID
	customer      order.Customer
	deliveryPoint kernel.GeoPoint
	itemName      string
	quantity      int
	totalPrice    float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to place a new order.
// Validates identifiers, customer details, delivery coordinates, and the
// purchased item. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	customer order.Customer,
	deliveryPoint kernel.GeoPoint,
	itemName string,
	quantity int,
	totalPrice float64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setCustomerID(customerID),
		orderCommand.setCustomer(customer),
		orderCommand.setDeliveryPoint(deliveryPoint),
		orderCommand.setItemName(itemName),
		orderCommand.setQuantity(quantity),
		orderCommand.setTotalPrice(totalPrice),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the identity of the placing customer.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Customer returns the contact and destination details.
func (c CreateOrderCommand) Customer() order.Customer {
	return c.customer
}

// DeliveryPoint returns the delivery destination coordinates.
func (c CreateOrderCommand) DeliveryPoint() kernel.GeoPoint {
	return c.deliveryPoint
}

// ItemName returns the purchased item name.
func (c CreateOrderCommand) ItemName() string {
	return c.itemName
}

// Quantity returns the number of items purchased.
func (c CreateOrderCommand) Quantity() int {
	return c.quantity
}

// TotalPrice returns the purchase total in USD.
func (c CreateOrderCommand) TotalPrice() float64 {
	return c.totalPrice
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}

	c.customer = customer
	return nil
}

func (c *CreateOrderCommand) setDeliveryPoint(deliveryPoint kernel.GeoPoint) error {
	if err := deliveryPoint.Validate(); err != nil {
		return err
	}

	c.deliveryPoint = deliveryPoint
	return nil
}

func (c *CreateOrderCommand) setItemName(itemName string) error {
	if itemName == "" {
		return ErrItemNameIsRequired
	}

	c.itemName = itemName
	return nil
}

func (c *CreateOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return ErrQuantityIsInvalid
	}

	c.quantity = quantity
	return nil
}

func (c *CreateOrderCommand) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return ErrTotalPriceIsInvalid
	}

	c.totalPrice = totalPrice
	return nil
}
