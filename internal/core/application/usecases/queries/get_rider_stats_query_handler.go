package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"brewride/internal/core/domain/services"

	"gorm.io/gorm"
)

// GetRiderStatsQueryHandler assembles a rider's earnings dashboard. Lifetime
// counters come from the stats row; the period figures are always recomputed
// from the completed-order archive, so a missed counter update (the stats
// write after completion is best-effort) never corrupts them.
type GetRiderStatsQueryHandler struct {
	db         *gorm.DB
	aggregator services.EarningsAggregator
}

// NewGetRiderStatsQueryHandler creates a handler for earnings dashboard
// queries. Requires a GORM database connection for query execution.
func NewGetRiderStatsQueryHandler(db *gorm.DB) GetRiderStatsQueryHandler {
	return GetRiderStatsQueryHandler{
		db:         db,
		aggregator: services.NewEarningsAggregator(),
	}
}

// Handle executes the dashboard query. Riders with no stats row yet get
// zero figures rather than an error.
func (h GetRiderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderStatsQuery,
) (GetRiderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderStatsQueryResponse{}, err
	}

	response := GetRiderStatsQueryResponse{RiderID: query.RiderID()}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total_earnings,
			total_deliveries,
			last_updated
		FROM rider_stats
		WHERE rider_id = ?
	`, query.RiderID().String()).Row()

	err := row.Scan(&response.TotalEarnings, &response.TotalDeliveries, &response.LastUpdated)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return GetRiderStatsQueryResponse{}, err
	}

	records, err := h.earningRecords(ctx, query)
	if err != nil {
		return GetRiderStatsQueryResponse{}, err
	}

	totals := h.aggregator.Totals(records, time.Now())
	response.DailyEarnings = totals.Daily
	response.WeeklyEarnings = totals.Weekly
	response.MonthlyEarnings = totals.Monthly
	return response, nil
}

func (h GetRiderStatsQueryHandler) earningRecords(
	ctx context.Context,
	query GetRiderStatsQuery,
) ([]services.EarningRecord, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			completed_at,
			total_price
		FROM completed_orders
		WHERE rider_id = ?
	`, query.RiderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]services.EarningRecord, 0)
	for rows.Next() {
		var record services.EarningRecord
		if err = rows.Scan(&record.CreatedAt, &record.Amount); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
