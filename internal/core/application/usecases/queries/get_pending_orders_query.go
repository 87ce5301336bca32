// Package queries contains read-only operations for retrieving system state.
// Query handlers bypass the aggregates and read with direct SQL for
// performance, following the CQRS pattern.
package queries

import (
	"errors"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/guard"
)

var ErrGetPendingOrdersQueryIsNotConstructed = errors.New(
	"GetPendingOrdersQuery must be created via NewGetPendingOrdersQuery constructor",
)

// GetPendingOrdersQuery retrieves all orders awaiting admin review.
//
// Example:
//
//	query := NewGetPendingOrdersQuery()
//	handler := NewGetPendingOrdersQueryHandler(db)
//
//	pending, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get review queue: %w", err)
//	}
//	fmt.Printf("%d orders awaiting review\n", len(pending))
type GetPendingOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingOrdersQuery creates a query for the admin review queue.
func NewGetPendingOrdersQuery() GetPendingOrdersQuery {
	return GetPendingOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetPendingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingOrdersQueryIsNotConstructed)
}

// OrderSummary is the read model for one order in a listing: everything the
// admin and rider screens show without loading the aggregate.
type OrderSummary struct {
	ID            kernel.UUID
	Status        order.Status
	CustomerName  string
	CustomerPhone string
	Address       string
	City          string
	DeliveryPoint kernel.GeoPoint
	ItemName      string
	Quantity      int
	TotalPrice    float64
	DeliveryFee   float64
	Claimed       bool
	CreatedAt     time.Time
}
