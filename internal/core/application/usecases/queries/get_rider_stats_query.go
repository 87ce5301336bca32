package queries

import (
	"errors"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

var ErrGetRiderStatsQueryIsNotConstructed = errors.New(
	"GetRiderStatsQuery must be created via NewGetRiderStatsQuery constructor",
)

// GetRiderStatsQuery retrieves a rider's earnings dashboard: the lifetime
// counters plus daily, weekly, and monthly sums recomputed from the
// completed-order archive at read time.
type GetRiderStatsQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderStatsQuery creates an earnings dashboard query for a rider.
func NewGetRiderStatsQuery(riderID kernel.UUID) (GetRiderStatsQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetRiderStatsQuery{}, err
	}

	return GetRiderStatsQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderStatsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderStatsQueryIsNotConstructed)
}

// RiderID returns the rider whose stats are requested.
func (q GetRiderStatsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// GetRiderStatsQueryResponse is the earnings dashboard read model. A rider
// with no completed deliveries gets all-zero figures, not an error.
type GetRiderStatsQueryResponse struct {
	RiderID         kernel.UUID
	TotalEarnings   float64
	TotalDeliveries int
	DailyEarnings   float64
	WeeklyEarnings  float64
	MonthlyEarnings float64
	LastUpdated     time.Time
}
