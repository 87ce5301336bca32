package order

import (
	"errors"
	"strings"

	"brewride/internal/pkg/errs"
	"brewride/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when a Customer was not created
// through the NewCustomer constructor.
var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")

// Customer is the contact and destination details frozen into an order at
// creation time. It is an immutable value object; all fields are required
// and validated inline so a malformed order never reaches the datastore.
type Customer struct { //nolint:recvcheck //using for validation
	name    string
	email   string
	phone   string
	address string
	city    string

	guard guard.ConstructorGuard
}

// NewCustomer creates the customer details for an order.
// All fields are required; missing fields are reported together via
// errors.Join so the caller can surface them inline.
func NewCustomer(name, email, phone, address, city string) (Customer, error) {
	customer := Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		customer.setField(&customer.name, name, "name"),
		customer.setEmail(email),
		customer.setField(&customer.phone, phone, "phone"),
		customer.setField(&customer.address, address, "address"),
		customer.setField(&customer.city, city, "city"),
	); err != nil {
		return Customer{}, err
	}

	return customer, nil
}

// Validate ensures the Customer was created through NewCustomer.
func (c Customer) Validate() error {
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// Name returns the customer's display name.
func (c Customer) Name() string { return c.name }

// Email returns the customer's email address.
func (c Customer) Email() string { return c.email }

// Phone returns the customer's contact phone number.
func (c Customer) Phone() string { return c.phone }

// Address returns the delivery street address.
func (c Customer) Address() string { return c.address }

// City returns the delivery city.
func (c Customer) City() string { return c.city }

func (c *Customer) setField(target *string, value, paramName string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	*target = value
	return nil
}

func (c *Customer) setEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if !strings.Contains(email, "@") {
		return errs.NewValueIsInvalidError("email")
	}
	c.email = email
	return nil
}
