package order

import (
	"errors"
	"fmt"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/errs"
	"brewride/internal/pkg/guard"
)

var (
	// ErrCompletedOrderIsNotConstructed is returned when a CompletedOrder
	// was not created through its constructors.
	ErrCompletedOrderIsNotConstructed = errors.New(
		"CompletedOrder must be created via NewCompletedOrder or Order.CompletedRecord")

	// ErrOrderNotCompleted is returned when archiving is attempted on an
	// order that has not reached Completed status.
	ErrOrderNotCompleted = errors.New("only a completed order can be archived")
)

// CompletedOrder is the immutable archival record written exactly once when
// an order completes. It snapshots the fields the earnings history needs so
// the record stays meaningful even if the live order row changes shape.
type CompletedOrder struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	riderID     kernel.UUID
	customerID  kernel.UUID
	itemName    string
	totalPrice  float64
	completedAt time.Time

	guard guard.ConstructorGuard
}

// NewCompletedOrder creates an archival record from its raw fields,
// typically when reconstructing from persistence.
func NewCompletedOrder(
	orderID kernel.UUID,
	riderID kernel.UUID,
	customerID kernel.UUID,
	itemName string,
	totalPrice float64,
	completedAt time.Time,
) (CompletedOrder, error) {
	record := CompletedOrder{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		record.setOrderID(orderID),
		record.setRiderID(riderID),
		record.setCustomerID(customerID),
		record.setItemName(itemName),
		record.setTotalPrice(totalPrice),
		record.setCompletedAt(completedAt),
	); err != nil {
		return CompletedOrder{}, err
	}

	return record, nil
}

// CompletedRecord produces the archival snapshot for this order.
// The order must already be in Completed status with a rider assigned.
func (o *Order) CompletedRecord(completedAt time.Time) (CompletedOrder, error) {
	if err := o.Validate(); err != nil {
		return CompletedOrder{}, err
	}

	if o.status != Completed {
		return CompletedOrder{}, ErrOrderNotCompleted
	}

	if o.riderID == nil {
		return CompletedOrder{}, ErrNoRiderAssigned
	}

	return NewCompletedOrder(o.id, *o.riderID, o.customerID, o.itemName, o.totalPrice, completedAt)
}

// Validate ensures the CompletedOrder was created through a constructor.
func (c CompletedOrder) Validate() error {
	return c.guard.Validate(ErrCompletedOrderIsNotConstructed)
}

// OrderID returns the identifier of the archived order.
func (c CompletedOrder) OrderID() kernel.UUID { return c.orderID }

// RiderID returns the rider who delivered the order.
func (c CompletedOrder) RiderID() kernel.UUID { return c.riderID }

// CustomerID returns the customer who placed the order.
func (c CompletedOrder) CustomerID() kernel.UUID { return c.customerID }

// ItemName returns the purchased item name at completion time.
func (c CompletedOrder) ItemName() string { return c.itemName }

// TotalPrice returns the purchase total at completion time.
func (c CompletedOrder) TotalPrice() float64 { return c.totalPrice }

// CompletedAt returns the completion timestamp.
func (c CompletedOrder) CompletedAt() time.Time { return c.completedAt }

func (c *CompletedOrder) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CompletedOrder) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	c.riderID = riderID
	return nil
}

func (c *CompletedOrder) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CompletedOrder) setItemName(itemName string) error {
	if itemName == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	c.itemName = itemName
	return nil
}

func (c *CompletedOrder) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%f is not greater than 0", totalPrice))
	}
	c.totalPrice = totalPrice
	return nil
}

func (c *CompletedOrder) setCompletedAt(completedAt time.Time) error {
	if completedAt.IsZero() {
		return errs.NewValueIsRequiredError("completedAt")
	}
	c.completedAt = completedAt
	return nil
}
