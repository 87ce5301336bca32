package ports

import (
	"context"

	"brewride/internal/core/domain/model/kernel"
)

// PositionCache stores the latest reported rider position per order for
// fast tracking reads. Entries expire on their own; a miss is answered from
// the order row instead and is reported as (nil, nil).
type PositionCache interface {
	// SetPosition records the rider's latest position for an order.
	SetPosition(ctx context.Context, orderID kernel.UUID, position kernel.GeoPoint) error

	// GetPosition returns the cached position, or nil without error on a miss.
	GetPosition(ctx context.Context, orderID kernel.UUID) (*kernel.GeoPoint, error)
}

// Geolocation provides rider position lookups for a tracked order: a single
// current-position query and a continuous stream. The returned stop function
// releases the stream; callers must invoke it when the tracking session
// ends, or the subscription leaks.
type Geolocation interface {
	// CurrentPosition returns the rider's latest known position for the order.
	CurrentPosition(ctx context.Context, orderID kernel.UUID) (kernel.GeoPoint, error)

	// StreamPosition delivers position updates for the order until the
	// context is done or the stop function is called.
	StreamPosition(ctx context.Context, orderID kernel.UUID) (<-chan kernel.GeoPoint, func(), error)
}

// RoutePlanner resolves a drivable path between two points for map display.
// The polyline is presentation-only: delivery fees always use the
// straight-line haversine distance.
type RoutePlanner interface {
	// Route returns an ordered polyline of waypoints from start to end,
	// or an empty slice when the routing service cannot produce a path.
	Route(ctx context.Context, start kernel.GeoPoint, end kernel.GeoPoint) ([]kernel.GeoPoint, error)
}
