package queries

import (
	"database/sql"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// scanOrderSummaries converts the shared order listing projection into read
// models. The column order must match the SELECT lists in the order queries.
func scanOrderSummaries(rows *sql.Rows) ([]OrderSummary, error) {
	summaries := make([]OrderSummary, 0)

	for rows.Next() {
		var summary OrderSummary
		var id uuid.UUID
		var riderID uuid.NullUUID
		var status int
		var lat, lng float64
		var createdAt time.Time

		err := rows.Scan(
			&id,
			&status,
			&riderID,
			&summary.CustomerName,
			&summary.CustomerPhone,
			&summary.Address,
			&summary.City,
			&lat,
			&lng,
			&summary.ItemName,
			&summary.Quantity,
			&summary.TotalPrice,
			&summary.DeliveryFee,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		summary.ID = orderID

		point, pointErr := kernel.NewGeoPoint(lat, lng)
		if pointErr != nil {
			return nil, pointErr
		}
		summary.DeliveryPoint = point

		summary.Status = order.Status(status)
		summary.Claimed = riderID.Valid
		summary.CreatedAt = createdAt
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
