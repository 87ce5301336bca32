package queries

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler assembles the live tracking snapshot shown on the
// customer's map. The rider position is answered from the cache when
// present and falls back to the persisted row, so tracking keeps working
// through a cache outage at the cost of staleness. The drivable route is
// decoration: when the planner fails the snapshot ships without it.
type TrackOrderQueryHandler struct {
	db      *gorm.DB
	cache   ports.PositionCache
	planner ports.RoutePlanner
	logger  *slog.Logger
}

// NewTrackOrderQueryHandler creates a handler for tracking queries.
// cache and planner may be nil; the handler degrades to row-only tracking.
func NewTrackOrderQueryHandler(
	db *gorm.DB,
	cache ports.PositionCache,
	planner ports.RoutePlanner,
	logger *slog.Logger,
) TrackOrderQueryHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return TrackOrderQueryHandler{
		db:      db,
		cache:   cache,
		planner: planner,
		logger:  logger.With("component", "track_order"),
	}
}

// Handle executes the tracking query. Returns an ObjectNotFoundError when
// the order does not exist.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			rider_id,
			rider_lat,
			rider_lng,
			delivery_lat,
			delivery_lng
		FROM orders
		WHERE id = ?
	`, query.OrderID().String()).Row()

	var status int
	var riderID uuid.NullUUID
	var riderLat, riderLng sql.NullFloat64
	var deliveryLat, deliveryLng float64

	err := row.Scan(&status, &riderID, &riderLat, &riderLng, &deliveryLat, &deliveryLng)
	if errors.Is(err, sql.ErrNoRows) {
		return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", query.OrderID())
	}
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	deliveryPoint, err := kernel.NewGeoPoint(deliveryLat, deliveryLng)
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}

	response := TrackOrderQueryResponse{
		OrderID:       query.OrderID(),
		Status:        order.Status(status),
		DeliveryPoint: deliveryPoint,
		Route:         make([]kernel.GeoPoint, 0),
	}

	if riderID.Valid {
		id, idErr := kernel.UUIDFromBytes(riderID.UUID[:])
		if idErr != nil {
			return TrackOrderQueryResponse{}, idErr
		}
		response.RiderID = &id
	}

	position := h.resolvePosition(ctx, query, riderLat, riderLng)
	if position != nil {
		response.RiderPosition = position
		distance := position.DistanceKm(deliveryPoint)
		response.DistanceKm = &distance
		response.Route = h.resolveRoute(ctx, query, *position, deliveryPoint, response.Status)
	}

	return response, nil
}

// resolvePosition prefers the cache over the persisted row. Cache errors are
// logged and treated as misses.
func (h TrackOrderQueryHandler) resolvePosition(
	ctx context.Context,
	query TrackOrderQuery,
	rowLat, rowLng sql.NullFloat64,
) *kernel.GeoPoint {
	if h.cache != nil {
		cached, err := h.cache.GetPosition(ctx, query.OrderID())
		if err != nil {
			h.logger.WarnContext(ctx, "position cache read failed",
				"order_id", query.OrderID().String(),
				"error", err)
		} else if cached != nil {
			return cached
		}
	}

	if !rowLat.Valid || !rowLng.Valid {
		return nil
	}

	point, err := kernel.NewGeoPoint(rowLat.Float64, rowLng.Float64)
	if err != nil {
		h.logger.WarnContext(ctx, "persisted rider position is invalid",
			"order_id", query.OrderID().String(),
			"error", err)
		return nil
	}

	return &point
}

// resolveRoute asks the planner for a drivable path while the order is in
// transit. Planner failures produce an empty route, never an error.
func (h TrackOrderQueryHandler) resolveRoute(
	ctx context.Context,
	query TrackOrderQuery,
	from, to kernel.GeoPoint,
	status order.Status,
) []kernel.GeoPoint {
	if h.planner == nil || (status != order.Accepted && status != order.PickedUp) {
		return make([]kernel.GeoPoint, 0)
	}

	route, err := h.planner.Route(ctx, from, to)
	if err != nil {
		h.logger.WarnContext(ctx, "route planning failed",
			"order_id", query.OrderID().String(),
			"error", err)
		return make([]kernel.GeoPoint, 0)
	}

	return route
}
