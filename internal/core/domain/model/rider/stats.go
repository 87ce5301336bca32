package rider

import (
	"errors"
	"fmt"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/errs"
	"brewride/internal/pkg/guard"
)

// ErrStatsAreNotConstructed is returned when using improperly initialized Stats.
var ErrStatsAreNotConstructed = errors.New("Stats must be created via NewStats or RestoreStats constructors")

// Stats is the lifetime earnings aggregate for a rider, mutated only when
// an order completes. It is deliberately a running counter: the per-period
// (daily/weekly/monthly) figures are recomputed at read time from the
// completed-order archive instead, so the two never have to reconcile.
type Stats struct {
	riderID         kernel.UUID
	totalEarnings   float64
	totalDeliveries int
	lastUpdated     time.Time

	guard guard.ConstructorGuard
}

// NewStats creates an empty stats record for a rider.
func NewStats(riderID kernel.UUID) (*Stats, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	return &Stats{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreStats reconstructs a stats record from persistence.
func RestoreStats(riderID kernel.UUID, totalEarnings float64, totalDeliveries int, lastUpdated time.Time) (*Stats, error) {
	if totalEarnings < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalEarnings",
			fmt.Errorf("%f is negative", totalEarnings))
	}
	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("totalDeliveries",
			fmt.Errorf("%d is negative", totalDeliveries))
	}

	stats, err := NewStats(riderID)
	if err != nil {
		return nil, err
	}

	stats.totalEarnings = totalEarnings
	stats.totalDeliveries = totalDeliveries
	stats.lastUpdated = lastUpdated
	return stats, nil
}

// Validate ensures the Stats were created through a constructor.
func (s *Stats) Validate() error {
	if s == nil {
		return ErrStatsAreNotConstructed
	}
	return s.guard.Validate(ErrStatsAreNotConstructed)
}

// RiderID returns the rider these stats belong to.
func (s *Stats) RiderID() kernel.UUID { return s.riderID }

// TotalEarnings returns the lifetime earnings in USD.
func (s *Stats) TotalEarnings() float64 { return s.totalEarnings }

// TotalDeliveries returns the lifetime completed delivery count.
func (s *Stats) TotalDeliveries() int { return s.totalDeliveries }

// LastUpdated returns when the stats last accrued a delivery.
func (s *Stats) LastUpdated() time.Time { return s.lastUpdated }

// ApplyDelivery accrues one completed delivery: earnings grow by the
// order's total price, the delivery count by one.
func (s *Stats) ApplyDelivery(earnings float64, at time.Time) error {
	if earnings <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("earnings",
			fmt.Errorf("%f is not greater than 0", earnings))
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}

	s.totalEarnings += earnings
	s.totalDeliveries++
	s.lastUpdated = at
	return nil
}
