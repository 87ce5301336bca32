package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/application/usecases/queries"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/tracking"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	customerID, err := identityFromHeader(ctx, HeaderCustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	customer, err := order.NewCustomer(
		request.CustomerName,
		request.CustomerEmail,
		request.CustomerPhone,
		request.CustomerAddress,
		request.CustomerCity,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	deliveryPoint, err := kernel.NewGeoPoint(request.DeliveryLat, request.DeliveryLng)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		customerID,
		customer,
		deliveryPoint,
		request.ItemName,
		request.Quantity,
		request.TotalPrice,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{OrderID: orderID.String()})
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel - the customer
// withdraws an order that no rider has claimed yet.
func (s *Server) CancelOrder(ctx echo.Context) error {
	customerID, err := identityFromHeader(ctx, HeaderCustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteOrder handles POST /api/v1/orders/:orderID/complete - the customer
// confirms receipt of a delivered order.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	customerID, err := identityFromHeader(ctx, HeaderCustomerID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, customerID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackOrder handles GET /api/v1/orders/:orderID/track - returns the
// current tracking snapshot for one order.
func (s *Server) TrackOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewTrackOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	snapshot, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toTrackOrderResponse(snapshot))
}

// GetRiderPosition handles GET /api/v1/orders/:orderID/position - returns
// just the rider's latest known position, a cheaper call than the full
// tracking snapshot for clients that only move a map marker.
func (s *Server) GetRiderPosition(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	position, err := s.geolocation.CurrentPosition(ctx.Request().Context(), orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GeoPointResponse{
		Lat: position.Lat(),
		Lng: position.Lng(),
	})
}

// trackEvent is the SSE payload for one tracking update.
type trackEvent struct {
	OrderID       string            `json:"order_id"`
	Status        string            `json:"status"`
	RiderID       *string           `json:"rider_id,omitempty"`
	RiderPosition *GeoPointResponse `json:"rider_position,omitempty"`
}

// TrackOrderStream handles GET /api/v1/orders/:orderID/track/stream - pushes
// tracking updates over server-sent events until the order reaches a
// terminal status or the client disconnects.
func (s *Server) TrackOrderStream(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	response := ctx.Response()
	response.Header().Set(echo.HeaderContentType, "text/event-stream")
	response.Header().Set("Cache-Control", "no-cache")
	response.Header().Set("Connection", "keep-alive")
	response.WriteHeader(http.StatusOK)
	response.Flush()

	snapshots, cancel := s.hub.Subscribe(orderID.String())
	defer cancel()

	requestCtx := ctx.Request().Context()
	for {
		select {
		case <-requestCtx.Done():
			return nil
		case snapshot, ok := <-snapshots:
			if !ok {
				return nil
			}

			if err := writeTrackEvent(response, snapshot); err != nil {
				return nil
			}

			if snapshot.Status.IsTerminal() {
				return nil
			}
		}
	}
}

func writeTrackEvent(response *echo.Response, snapshot tracking.Snapshot) error {
	event := trackEvent{
		OrderID: snapshot.OrderID,
		Status:  snapshot.Status.String(),
		RiderID: snapshot.RiderID,
	}
	if snapshot.RiderPosition != nil {
		event.RiderPosition = &GeoPointResponse{
			Lat: snapshot.RiderPosition.Lat(),
			Lng: snapshot.RiderPosition.Lng(),
		}
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(response, "data: %s\n\n", data); err != nil {
		return err
	}
	response.Flush()
	return nil
}
