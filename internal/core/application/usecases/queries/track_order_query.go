package queries

import (
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the live tracking snapshot for one order:
// current status, the rider's last known position, the remaining
// straight-line distance, and a drivable route for the map when available.
type TrackOrderQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a tracking query for an order.
func NewTrackOrderQuery(orderID kernel.UUID) (TrackOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return TrackOrderQuery{}, err
	}

	return TrackOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// OrderID returns the tracked order.
func (q TrackOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// TrackOrderQueryResponse is the tracking snapshot read model.
// RiderPosition and DistanceKm are nil until the rider reports a position;
// Route is empty whenever the routing service has nothing to offer.
type TrackOrderQueryResponse struct {
	OrderID       kernel.UUID
	Status        order.Status
	RiderID       *kernel.UUID
	RiderPosition *kernel.GeoPoint
	DeliveryPoint kernel.GeoPoint
	DistanceKm    *float64
	Route         []kernel.GeoPoint
}
