package http

import (
	"net/http"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// GetPendingOrders handles GET /api/v1/admin/orders/pending - the review
// queue, oldest first.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	summaries, err := s.getPendingOrdersHandler.Handle(
		ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderSummaryResponses(summaries))
}

// ReviewOrder handles POST /api/v1/admin/orders/:orderID/review - approves
// or rejects a pending order.
func (s *Server) ReviewOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReviewRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewReviewOrderCommand(orderID, request.Approve)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.reviewOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReviewRider handles POST /api/v1/admin/riders/:riderID/review - approves
// or rejects a rider account application.
func (s *Server) ReviewRider(ctx echo.Context) error {
	riderID, err := pathUUID(ctx, "riderID")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ReviewRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewReviewRiderCommand(riderID, request.Approve)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := s.reviewRiderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
