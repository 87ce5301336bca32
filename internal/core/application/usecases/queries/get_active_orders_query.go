package queries

import (
	"errors"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/pkg/guard"
)

// ActiveOrderWindow bounds how far back the rider work queue looks. Orders
// older than this are considered stale and drop out of the list even if
// their status is still active.
const ActiveOrderWindow = 3 * time.Hour

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves a rider's work queue: recent orders that
// are approved and unclaimed (up for grabs by any rider) plus the orders
// this rider has claimed and not yet seen completed.
//
// Example:
//
//	query, err := NewGetActiveOrdersQuery(riderID)
//	if err != nil {
//	    return err
//	}
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get work queue: %w", err)
//	}
type GetActiveOrdersQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates a work queue query for a rider.
func NewGetActiveOrdersQuery(riderID kernel.UUID) (GetActiveOrdersQuery, error) {
	if err := riderID.Validate(); err != nil {
		return GetActiveOrdersQuery{}, err
	}

	return GetActiveOrdersQuery{
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// RiderID returns the rider whose work queue is requested.
func (q GetActiveOrdersQuery) RiderID() kernel.UUID {
	return q.riderID
}
