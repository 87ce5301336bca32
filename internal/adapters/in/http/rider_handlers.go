package http

import (
	"net/http"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/application/usecases/queries"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// RegisterRider handles POST /api/v1/riders - submits a rider account
// application. The account stays pending until an admin reviews it.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var request RegisterRiderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	riderID := kernel.NewUUID()
	cmd, err := commands.NewCreateRiderCommand(riderID, request.Name, request.Phone, request.Vehicle)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.createRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterRiderResponse{RiderID: riderID.String()})
}

// GetActiveOrders handles GET /api/v1/rider/orders - the rider's work queue:
// unclaimed approved orders plus the rider's own in-flight deliveries.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	riderID, err := identityFromHeader(ctx, HeaderRiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveOrdersQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaryResponses(summaries))
}

// AcceptOrder handles POST /api/v1/rider/orders/:orderID/accept - the rider
// claims an approved order. Losing the claim race yields 409.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	riderID, err := identityFromHeader(ctx, HeaderRiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickUpOrder handles POST /api/v1/rider/orders/:orderID/pickup - the rider
// records collecting the order from the cafe.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	return s.advanceDelivery(ctx, order.PickedUp)
}

// DeliverOrder handles POST /api/v1/rider/orders/:orderID/deliver - the
// rider records handing the order to the customer.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	return s.advanceDelivery(ctx, order.Delivered)
}

func (s *Server) advanceDelivery(ctx echo.Context, stage order.Status) error {
	riderID, err := identityFromHeader(ctx, HeaderRiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(orderID, riderID, stage)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.advanceDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportPosition handles POST /api/v1/rider/orders/:orderID/position - the
// rider reports its location while carrying an order.
func (s *Server) ReportPosition(ctx echo.Context) error {
	riderID, err := identityFromHeader(ctx, HeaderRiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request PositionRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	position, err := kernel.NewGeoPoint(request.Lat, request.Lng)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewUpdateRiderPositionCommand(orderID, riderID, position)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.updateRiderPositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRiderStats handles GET /api/v1/rider/stats - the rider's earnings
// dashboard with lifetime counters and period breakdowns.
func (s *Server) GetRiderStats(ctx echo.Context) error {
	riderID, err := identityFromHeader(ctx, HeaderRiderID)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetRiderStatsQuery(riderID)
	if err != nil {
		return respondError(ctx, err)
	}

	stats, err := s.getRiderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRiderStatsResponse(stats))
}
