package rider

import (
	"errors"
	"fmt"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/errs"
	"brewride/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider constructors")
	// ErrRiderNotApproved is returned when an unapproved rider attempts fleet actions.
	ErrRiderNotApproved = errors.New("rider account is not approved")
)

// AccountStatus is the administrative approval state of a rider account.
// It is distinct from any order status: a rider must have an Approved
// account before claiming orders, regardless of order lifecycle state.
type AccountStatus int

const (
	// AccountUnknown represents an invalid or undefined account status.
	AccountUnknown AccountStatus = iota

	// AccountPending is the initial state of a freshly registered rider,
	// awaiting administrator review.
	AccountPending

	// AccountApproved marks a rider cleared to claim and deliver orders.
	AccountApproved

	// AccountRejected marks a rider declined by an administrator.
	AccountRejected
)

// getAccountStatusStrings returns the wire-format names of account statuses.
func getAccountStatusStrings() map[AccountStatus]string {
	return map[AccountStatus]string{
		AccountUnknown:  "unknown",
		AccountPending:  "pending",
		AccountApproved: "approved",
		AccountRejected: "rejected",
	}
}

// Validate checks that the AccountStatus is one of the defined states.
func (s AccountStatus) Validate() error {
	if s < AccountPending || s > AccountRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"account status", fmt.Errorf("%d is not a valid account status", s))
	}
	return nil
}

// String returns the wire-format name of the account status.
func (s AccountStatus) String() string {
	if str, ok := getAccountStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Rider is the aggregate root for a delivery-fleet member. It carries the
// rider's profile and the administrative account approval state; per-order
// delivery roles live on the Order aggregate.
type Rider struct {
	// id uniquely identifies the rider
	id kernel.UUID
	// name is the rider's display name
	name string
	// phone is the rider's contact number
	phone string
	// vehicle describes the rider's delivery vehicle
	vehicle string
	// accountStatus is the administrative approval state
	accountStatus AccountStatus

	guard guard.ConstructorGuard
}

// NewRider registers a new rider in AccountPending status.
// Name, phone, and vehicle are required.
func NewRider(id kernel.UUID, name, phone, vehicle string) (*Rider, error) {
	rider := &Rider{
		accountStatus: AccountPending,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rider.setID(id),
		rider.setName(name),
		rider.setPhone(phone),
		rider.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return rider, nil
}

// RestoreRider reconstructs a Rider from persistence with its stored
// account status.
func RestoreRider(id kernel.UUID, name, phone, vehicle string, status AccountStatus) (*Rider, error) {
	rider, err := NewRider(id, name, phone, vehicle)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	rider.accountStatus = status
	return rider, nil
}

// Validate ensures the Rider was created through a constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID { return r.id }

// Name returns the rider's display name.
func (r *Rider) Name() string { return r.name }

// Phone returns the rider's contact number.
func (r *Rider) Phone() string { return r.phone }

// Vehicle returns the rider's delivery vehicle description.
func (r *Rider) Vehicle() string { return r.vehicle }

// AccountStatus returns the administrative approval state.
func (r *Rider) AccountStatus() AccountStatus { return r.accountStatus }

// IsApproved reports whether the rider is cleared to claim orders.
func (r *Rider) IsApproved() bool { return r.accountStatus == AccountApproved }

// Approve clears the rider's account for fleet work. Admin action; only a
// pending account can be approved.
func (r *Rider) Approve() error {
	return r.review(AccountApproved)
}

// RejectAccount declines the rider's registration. Admin action; only a
// pending account can be rejected.
func (r *Rider) RejectAccount() error {
	return r.review(AccountRejected)
}

func (r *Rider) review(next AccountStatus) error {
	if r.accountStatus != AccountPending {
		return errs.NewValueIsInvalidErrorWithCause("account status",
			fmt.Errorf("%s account cannot be reviewed", r.accountStatus))
	}

	r.accountStatus = next
	return nil
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	r.phone = phone
	return nil
}

func (r *Rider) setVehicle(vehicle string) error {
	if vehicle == "" {
		return errs.NewValueIsRequiredError("vehicle")
	}
	r.vehicle = vehicle
	return nil
}
