package queries

import (
	"context"
	"time"

	"brewride/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves the rider work queue. An order shows
// up either because it is approved and no rider has claimed it yet, or
// because this rider claimed it and it is still in flight. Both halves are
// limited to the trailing ActiveOrderWindow so abandoned orders age out of
// the list instead of cluttering it forever.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for rider work queue
// queries. Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the work queue query. Newest orders come first so fresh
// work surfaces at the top of the rider's screen.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	since := time.Now().UTC().Add(-ActiveOrderWindow)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			rider_id,
			customer_name,
			customer_phone,
			customer_address,
			customer_city,
			delivery_lat,
			delivery_lng,
			item_name,
			quantity,
			total_price,
			delivery_fee,
			created_at
		FROM orders
		WHERE created_at >= ?
		  AND (
			(status = ? AND rider_id IS NULL)
			OR (rider_id = ? AND status IN (?, ?, ?))
		  )
		ORDER BY created_at DESC
	`, since, order.Approved, query.RiderID().String(),
		order.Accepted, order.PickedUp, order.Delivered).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderSummaries(rows)
}
