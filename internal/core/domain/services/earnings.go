package services

import "time"

// EarningRecord is one completed order as seen by the earnings aggregation:
// when it was placed and what it was worth to the rider.
type EarningRecord struct {
	CreatedAt time.Time
	Amount    float64
}

// PeriodTotals is the read-time earnings breakdown for a rider.
type PeriodTotals struct {
	Daily   float64
	Weekly  float64
	Monthly float64
}

// EarningsAggregator buckets a rider's completed orders into daily, weekly,
// and monthly sums. This is a pure read-time aggregation over the archive,
// not a maintained counter: given the same completed-order set it produces
// identical totals no matter when within the bucket window it is called.
//
// Bucket boundaries, all in the reference time's location:
//   - daily: since local midnight
//   - weekly: since the start of the week, week starting on Sunday
//   - monthly: since the first of the month
type EarningsAggregator struct{}

// NewEarningsAggregator creates a new EarningsAggregator.
func NewEarningsAggregator() EarningsAggregator {
	return EarningsAggregator{}
}

// Totals sums the records into the three period buckets relative to now.
// A record contributes to every bucket whose window contains its CreatedAt;
// records in the future of now are ignored.
func (EarningsAggregator) Totals(records []EarningRecord, now time.Time) PeriodTotals {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekStart := dayStart.AddDate(0, 0, -int(now.Weekday()))
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var totals PeriodTotals
	for _, record := range records {
		if record.CreatedAt.After(now) {
			continue
		}

		if !record.CreatedAt.Before(dayStart) {
			totals.Daily += record.Amount
		}
		if !record.CreatedAt.Before(weekStart) {
			totals.Weekly += record.Amount
		}
		if !record.CreatedAt.Before(monthStart) {
			totals.Monthly += record.Amount
		}
	}

	return totals
}
