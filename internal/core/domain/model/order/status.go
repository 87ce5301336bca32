package order

import (
	"fmt"

	"brewride/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so that orders
// always follow the delivery workflow and never move backwards.
//
// State transitions:
//
//	Pending ──┬──> Approved ──> Accepted ──> PickedUp ──> Delivered ──> Completed
//	          │        │
//	          ├──> Rejected
//	          └────────┴──> Cancelled
//
// Pending and Approved orders can be cancelled by the customer; Pending
// orders can be rejected by an admin. Rejected, Cancelled, and Completed
// are terminal states with no further transitions.
//
// Status is a value object that validates state transitions and provides
// the wire-format string representation used for persistence and events.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order,
	// awaiting admin review.
	Pending

	// Approved indicates an admin accepted the order; it is now visible
	// to riders and waiting to be claimed.
	Approved

	// Rejected indicates an admin declined the order. Terminal.
	Rejected

	// Cancelled indicates the customer withdrew the order before a rider
	// claimed it. Terminal.
	Cancelled

	// Accepted indicates a rider claimed the order and is heading to the cafe.
	Accepted

	// PickedUp indicates the rider collected the order from the cafe.
	PickedUp

	// Delivered indicates the rider handed the order to the customer,
	// awaiting the customer's confirmation of receipt.
	Delivered

	// Completed indicates the customer confirmed receipt. Terminal.
	Completed
)

// getStatusStrings returns the wire-format names of all statuses,
// including Unknown, to support string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Approved:  "approved",
		Rejected:  "rejected",
		Cancelled: "cancelled",
		Accepted:  "accepted",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Completed: "completed",
	}
}

// getStatusTransitions returns the edges of the lifecycle graph.
// Statuses absent from the map are terminal.
func getStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Approved, Rejected, Cancelled},
		Approved:  {Accepted, Cancelled},
		Accepted:  {PickedUp},
		PickedUp:  {Delivered},
		Delivered: {Completed},
	}
}

// StatusFromString converts a wire-format name back into a Status.
// Returns an error for names outside the closed enum; used when validating
// rows and change notifications at the datastore boundary.
func StatusFromString(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}

	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s <= Unknown || s > Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Implements fmt.Stringer; safe on any value, invalid values yield "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status admits no further transitions.
// Terminal states are Rejected, Cancelled, and Completed.
func (s Status) IsTerminal() bool {
	return s == Rejected || s == Cancelled || s == Completed
}

// CanTransitionTo reports whether a single edge from s to next exists
// in the lifecycle graph.
func (s Status) CanTransitionTo(next Status) bool {
	for _, candidate := range getStatusTransitions()[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// CanProgressTo reports whether next is reachable from s through one or
// more forward edges. Used by status observers to drop stale or duplicate
// notifications: an observation that is neither the current status nor
// reachable from it implies a backward transition and must be ignored.
func (s Status) CanProgressTo(next Status) bool {
	transitions := getStatusTransitions()

	frontier := []Status{s}
	seen := map[Status]bool{s: true}

	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]

		for _, candidate := range transitions[current] {
			if candidate == next {
				return true
			}
			if !seen[candidate] {
				seen[candidate] = true
				frontier = append(frontier, candidate)
			}
		}
	}

	return false
}

// Approve transitions Pending to Approved. Admin action.
func (s Status) Approve() (Status, error) {
	return s.transitionTo(Approved, "approve")
}

// Reject transitions Pending to Rejected. Admin action.
func (s Status) Reject() (Status, error) {
	return s.transitionTo(Rejected, "reject")
}

// Cancel transitions Pending or Approved to Cancelled. Customer action;
// once a rider has claimed the order cancellation is no longer legal.
func (s Status) Cancel() (Status, error) {
	return s.transitionTo(Cancelled, "cancel")
}

// Accept transitions Approved to Accepted. Rider action. The in-process
// check here is advisory only: the authoritative check is the conditional
// write in the datastore, which resolves concurrent accept attempts.
func (s Status) Accept() (Status, error) {
	return s.transitionTo(Accepted, "accept")
}

// PickUp transitions Accepted to PickedUp. Rider action.
func (s Status) PickUp() (Status, error) {
	return s.transitionTo(PickedUp, "pick up")
}

// Deliver transitions PickedUp to Delivered. Rider action.
func (s Status) Deliver() (Status, error) {
	return s.transitionTo(Delivered, "deliver")
}

// Complete transitions Delivered to Completed. Customer action;
// triggers archival and rider stats accrual at the application layer.
func (s Status) Complete() (Status, error) {
	return s.transitionTo(Completed, "complete")
}

func (s Status) transitionTo(next Status, action string) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to %s", s.String(), action),
		)
	}
	return next, nil
}
