package ports

import (
	"context"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)
}

// RiderStatsRepository defines the persistence contract for the lifetime
// earnings aggregate. Save is an upsert: the first completed delivery for a
// rider creates the row.
type RiderStatsRepository interface {
	// Get retrieves the stats row for a rider.
	// Returns an ObjectNotFoundError when the rider has no stats yet.
	Get(ctx context.Context, riderID kernel.UUID) (*rider.Stats, error)

	// Save inserts or updates the stats row.
	Save(ctx context.Context, stats *rider.Stats) error
}

// CompletedOrderRepository defines the persistence contract for the
// archival records written exactly once per completed order.
type CompletedOrderRepository interface {
	// Add persists an archival record. The record is immutable; adding a
	// second record for the same order is a constraint violation.
	Add(ctx context.Context, record order.CompletedOrder) error

	// GetByOrderID retrieves the archival record for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (order.CompletedOrder, error)
}
