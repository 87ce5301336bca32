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
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructors")

	// ErrCustomerMismatch is returned when a customer-only action is
	// attempted by someone other than the order's owner.
	ErrCustomerMismatch = errors.New("order belongs to a different customer")

	// ErrRiderMismatch is returned when a rider-only action is attempted
	// by a rider other than the one assigned to the order.
	ErrRiderMismatch = errors.New("order is assigned to a different rider")

	// ErrNoRiderAssigned is returned when a rider action is attempted on
	// an order that has no rider yet.
	ErrNoRiderAssigned = errors.New("order has no rider assigned")
)

// Order is the aggregate root for a single coffee purchase tracked through
// the delivery lifecycle. It owns the status state machine and the
// role-based preconditions of every transition.
//
// Invariants:
//   - riderID is nil exactly while status is Pending, Approved, Rejected,
//     or Cancelled; once set it is never cleared (orders are not reassigned)
//   - status transitions are monotonic along the lifecycle graph
//   - delivery fee is frozen at creation and never recomputed
//   - createdAt is immutable
//
// The struct uses private fields so the invariants can only be changed
// through validated methods. In-process transition checks guard each
// client's view; the one cross-device race (two riders claiming the same
// approved order) is resolved by a conditional write in the datastore,
// not here.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// customerID identifies the authenticated customer who placed the order
	customerID kernel.UUID

	// customer is the frozen contact and destination details
	customer Customer

	// deliveryPoint is the delivery destination coordinates
	deliveryPoint kernel.GeoPoint

	// riderID is the claiming rider (nil until the order is accepted)
	riderID *kernel.UUID

	// riderPosition is the rider's last reported position, updated
	// continuously while status is Accepted or PickedUp
	riderPosition *kernel.GeoPoint

	// itemName and quantity describe the purchased item
	itemName string
	quantity int

	// totalPrice is the purchase total in USD
	totalPrice float64

	// deliveryFee is the fee frozen at creation time
	deliveryFee float64

	// createdAt is the creation timestamp, immutable
	createdAt time.Time

	// status is the current state in the order lifecycle
	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status. This is the only way to
// create a fresh order; all invariants are validated up front.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customerID: the placing customer's identity (must be a valid UUID)
//   - customer: validated contact and destination details
//   - deliveryPoint: validated delivery coordinates
//   - itemName: purchased item (required)
//   - quantity: number of items (must be positive)
//   - totalPrice: purchase total in USD (must be positive)
//   - deliveryFee: fee computed at creation time (must not be negative)
//   - createdAt: creation timestamp (must not be zero)
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customer Customer,
	deliveryPoint kernel.GeoPoint,
	itemName string,
	quantity int,
	totalPrice float64,
	deliveryFee float64,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomerID(customerID),
		order.setCustomer(customer),
		order.setDeliveryPoint(deliveryPoint),
		order.setItemName(itemName),
		order.setQuantity(quantity),
		order.setTotalPrice(totalPrice),
		order.setDeliveryFee(deliveryFee),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence. Unlike NewOrder it
// accepts any valid status and an optional rider assignment, and it checks
// the rider/status consistency invariant on the way in so corrupt rows are
// rejected at the datastore boundary.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	customer Customer,
	deliveryPoint kernel.GeoPoint,
	itemName string,
	quantity int,
	totalPrice float64,
	deliveryFee float64,
	createdAt time.Time,
	status Status,
	riderID *kernel.UUID,
	riderPosition *kernel.GeoPoint,
) (*Order, error) {
	order, err := NewOrder(id, customerID, customer, deliveryPoint,
		itemName, quantity, totalPrice, deliveryFee, createdAt)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if err = validateRiderAssignment(status, riderID); err != nil {
		return nil, err
	}

	order.status = status
	order.riderID = riderID
	order.riderPosition = riderPosition
	return order, nil
}

// validateRiderAssignment enforces the invariant that riderID is unset
// exactly while the order is unclaimed.
func validateRiderAssignment(status Status, riderID *kernel.UUID) error {
	claimed := status == Accepted || status == PickedUp ||
		status == Delivered || status == Completed

	if claimed && riderID == nil {
		return errs.NewValueIsInvalidErrorWithCause("riderID",
			fmt.Errorf("%s order must have a rider", status))
	}

	if !claimed && riderID != nil {
		return errs.NewValueIsInvalidErrorWithCause("riderID",
			fmt.Errorf("%s order must not have a rider", status))
	}

	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the identity of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Customer returns the frozen contact and destination details.
func (o *Order) Customer() Customer { return o.customer }

// DeliveryPoint returns the delivery destination coordinates.
func (o *Order) DeliveryPoint() kernel.GeoPoint { return o.deliveryPoint }

// Rider returns the claiming rider's ID, or nil while unclaimed.
func (o *Order) Rider() *kernel.UUID { return o.riderID }

// RiderPosition returns the rider's last reported position, or nil if the
// rider has not reported one yet.
func (o *Order) RiderPosition() *kernel.GeoPoint { return o.riderPosition }

// ItemName returns the purchased item name.
func (o *Order) ItemName() string { return o.itemName }

// Quantity returns the number of items purchased.
func (o *Order) Quantity() int { return o.quantity }

// TotalPrice returns the purchase total in USD.
func (o *Order) TotalPrice() float64 { return o.totalPrice }

// DeliveryFee returns the fee frozen at creation time.
func (o *Order) DeliveryFee() float64 { return o.deliveryFee }

// CreatedAt returns the immutable creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Status returns the current status of the order.
func (o *Order) Status() Status { return o.status }

// Approve moves a pending order to Approved. Admin action.
func (o *Order) Approve() error {
	newStatus, err := o.status.Approve()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Reject moves a pending order to Rejected. Admin action; terminal.
func (o *Order) Reject() error {
	newStatus, err := o.status.Reject()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order. Only the owning customer may cancel, and only
// while the order is Pending or Approved; once a rider has claimed it the
// cancellation is rejected.
func (o *Order) Cancel(customerID kernel.UUID) error {
	if err := o.requireCustomer(customerID); err != nil {
		return err
	}

	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Accept claims an approved order for a rider and records the assignment.
// Once set, the rider is never cleared: orders are not reassigned.
//
// This method only guards the local view. Concurrent accepts from other
// devices are resolved by the repository's conditional write; callers must
// treat its failure as authoritative and re-sync.
func (o *Order) Accept(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	return nil
}

// MarkPickedUp records that the assigned rider collected the order from
// the cafe. Only the rider who accepted the order may advance it.
func (o *Order) MarkPickedUp(riderID kernel.UUID) error {
	if err := o.requireRider(riderID); err != nil {
		return err
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkDelivered records that the assigned rider handed the order to the
// customer. Only the rider who accepted the order may advance it.
func (o *Order) MarkDelivered(riderID kernel.UUID) error {
	if err := o.requireRider(riderID); err != nil {
		return err
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete confirms receipt and finalizes the order. Only the owning
// customer may complete, and only from Delivered. Archival and rider stats
// accrual are side effects coordinated by the application layer.
func (o *Order) Complete(customerID kernel.UUID) error {
	if err := o.requireCustomer(customerID); err != nil {
		return err
	}

	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// UpdateRiderPosition records the rider's live position. Positions are only
// accepted from the assigned rider while the order is Accepted or PickedUp;
// outside that window the update is rejected so terminal orders stay frozen.
func (o *Order) UpdateRiderPosition(riderID kernel.UUID, position kernel.GeoPoint) error {
	if err := o.requireRider(riderID); err != nil {
		return err
	}

	if err := position.Validate(); err != nil {
		return err
	}

	if o.status != Accepted && o.status != PickedUp {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to report rider position", o.status))
	}

	o.riderPosition = &position
	return nil
}

func (o *Order) requireCustomer(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	if !o.customerID.IsEqual(customerID) {
		return ErrCustomerMismatch
	}

	return nil
}

func (o *Order) requireRider(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	if o.riderID == nil {
		return ErrNoRiderAssigned
	}

	if !o.riderID.IsEqual(riderID) {
		return ErrRiderMismatch
	}

	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setDeliveryPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	o.deliveryPoint = point
	return nil
}

func (o *Order) setItemName(itemName string) error {
	if itemName == "" {
		return errs.NewValueIsRequiredError("itemName")
	}
	o.itemName = itemName
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setTotalPrice(totalPrice float64) error {
	if totalPrice <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("totalPrice",
			fmt.Errorf("%f is not greater than 0", totalPrice))
	}
	o.totalPrice = totalPrice
	return nil
}

func (o *Order) setDeliveryFee(deliveryFee float64) error {
	if deliveryFee < 0 {
		return errs.NewValueIsInvalidErrorWithCause("deliveryFee",
			fmt.Errorf("%f is negative", deliveryFee))
	}
	o.deliveryFee = deliveryFee
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
