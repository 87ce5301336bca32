// Package ports defines the contracts between the domain core and
// infrastructure adapters: repositories, the unit of work, the change-feed
// publisher, and the tracking collaborators. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"
	"errors"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
)

// ErrStatusPreconditionFailed is returned by the conditional writes when the
// row's status no longer matches the expected prior value, meaning another
// actor got there first. Callers must re-sync to the authoritative row and
// must not retry the same write.
var ErrStatusPreconditionFailed = errors.New("order status precondition failed")

// OrderRepository defines the persistence contract for order aggregates.
//
// Accept and CompleteIfDelivered are conditional writes (compare-and-swap on
// the status column) rather than blind updates: Accept resolves the race
// between riders claiming the same approved order, and CompleteIfDelivered
// makes completion idempotent so a duplicate confirmation can never
// double-archive or double-count stats.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Accept atomically claims an approved order for a rider: it sets
	// status=accepted and rider_id in a single conditional update that only
	// commits if the row's status is still approved at write time. Returns
	// ErrStatusPreconditionFailed if another rider already accepted.
	Accept(ctx context.Context, orderID kernel.UUID, riderID kernel.UUID) error

	// CompleteIfDelivered atomically moves a delivered order to completed.
	// Returns ErrStatusPreconditionFailed if the order is not in delivered
	// status at write time (including when it is already completed).
	CompleteIfDelivered(ctx context.Context, orderID kernel.UUID) error

	// UpdatePosition writes only the rider position columns, and only while
	// the order is held by this rider in an en-route status (accepted,
	// picked_up). Returns ErrStatusPreconditionFailed if the row left that
	// window, so a delayed report never touches a finished order.
	UpdatePosition(ctx context.Context, orderID kernel.UUID, riderID kernel.UUID, position kernel.GeoPoint) error

	// GetActiveForRider retrieves the rider's work queue: orders that are
	// approved and unclaimed (visible to every rider) or claimed by this
	// rider and still in flight (accepted, picked_up, delivered), restricted
	// to orders created at or after the since cutoff.
	GetActiveForRider(ctx context.Context, riderID kernel.UUID, since time.Time) ([]*order.Order, error)

	// GetAllActive retrieves all orders in a non-terminal status.
	// Used by the fallback poller that feeds tracking subscribers.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetCompletedByRider retrieves all of a rider's completed orders for
	// the read-time earnings aggregation.
	GetCompletedByRider(ctx context.Context, riderID kernel.UUID) ([]*order.Order, error)
}
