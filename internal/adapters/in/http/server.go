// Package http exposes the order lifecycle over a REST API. Identity is
// header-based: customers and riders present their ID, admin endpoints
// require the shared admin key. There is no session layer; the gateway in
// front of this service is expected to authenticate the headers.
package http

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"brewride/internal/core/application/usecases/commands"
	"brewride/internal/core/application/usecases/queries"
	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/domain/model/rider"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"
	"brewride/internal/tracking"

	"github.com/labstack/echo/v4"
)

// Identity and authorization headers.
const (
	HeaderCustomerID = "X-Customer-ID"
	HeaderRiderID    = "X-Rider-ID"
	HeaderAdminKey   = "X-Admin-Key"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	reviewOrderHandler         commands.ReviewOrderCommandHandler
	cancelOrderHandler         commands.CancelOrderCommandHandler
	acceptOrderHandler         commands.AcceptOrderCommandHandler
	advanceDeliveryHandler     commands.AdvanceDeliveryCommandHandler
	completeOrderHandler       commands.CompleteOrderCommandHandler
	updateRiderPositionHandler commands.UpdateRiderPositionCommandHandler
	createRiderHandler         commands.CreateRiderCommandHandler
	reviewRiderHandler         commands.ReviewRiderCommandHandler

	// Query handlers
	getPendingOrdersHandler queries.GetPendingOrdersQueryHandler
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	getRiderStatsHandler    queries.GetRiderStatsQueryHandler
	trackOrderHandler       queries.TrackOrderQueryHandler

	hub         *tracking.Hub
	geolocation ports.Geolocation
	adminKey    string
}

// ServerConfig bundles the handlers and collaborators the server needs.
type ServerConfig struct {
	CreateOrderHandler         commands.CreateOrderCommandHandler
	ReviewOrderHandler         commands.ReviewOrderCommandHandler
	CancelOrderHandler         commands.CancelOrderCommandHandler
	AcceptOrderHandler         commands.AcceptOrderCommandHandler
	AdvanceDeliveryHandler     commands.AdvanceDeliveryCommandHandler
	CompleteOrderHandler       commands.CompleteOrderCommandHandler
	UpdateRiderPositionHandler commands.UpdateRiderPositionCommandHandler
	CreateRiderHandler         commands.CreateRiderCommandHandler
	ReviewRiderHandler         commands.ReviewRiderCommandHandler

	GetPendingOrdersHandler queries.GetPendingOrdersQueryHandler
	GetActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	GetRiderStatsHandler    queries.GetRiderStatsQueryHandler
	TrackOrderHandler       queries.TrackOrderQueryHandler

	Hub         *tracking.Hub
	Geolocation ports.Geolocation
	AdminKey    string
}

// NewServer creates an HTTP server from its configuration.
func NewServer(cfg ServerConfig) *Server {
	return &Server{
		createOrderHandler:         cfg.CreateOrderHandler,
		reviewOrderHandler:         cfg.ReviewOrderHandler,
		cancelOrderHandler:         cfg.CancelOrderHandler,
		acceptOrderHandler:         cfg.AcceptOrderHandler,
		advanceDeliveryHandler:     cfg.AdvanceDeliveryHandler,
		completeOrderHandler:       cfg.CompleteOrderHandler,
		updateRiderPositionHandler: cfg.UpdateRiderPositionHandler,
		createRiderHandler:         cfg.CreateRiderHandler,
		reviewRiderHandler:         cfg.ReviewRiderHandler,
		getPendingOrdersHandler:    cfg.GetPendingOrdersHandler,
		getActiveOrdersHandler:     cfg.GetActiveOrdersHandler,
		getRiderStatsHandler:       cfg.GetRiderStatsHandler,
		trackOrderHandler:          cfg.TrackOrderHandler,
		hub:                        cfg.Hub,
		geolocation:                cfg.Geolocation,
		adminKey:                   cfg.AdminKey,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	// Customer endpoints
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/complete", s.CompleteOrder)
	api.GET("/orders/:orderID/track", s.TrackOrder)
	api.GET("/orders/:orderID/track/stream", s.TrackOrderStream)
	api.GET("/orders/:orderID/position", s.GetRiderPosition)

	// Rider endpoints
	api.POST("/riders", s.RegisterRider)
	riderAPI := api.Group("/rider")
	riderAPI.GET("/orders", s.GetActiveOrders)
	riderAPI.POST("/orders/:orderID/accept", s.AcceptOrder)
	riderAPI.POST("/orders/:orderID/pickup", s.PickUpOrder)
	riderAPI.POST("/orders/:orderID/deliver", s.DeliverOrder)
	riderAPI.POST("/orders/:orderID/position", s.ReportPosition)
	riderAPI.GET("/stats", s.GetRiderStats)

	// Admin endpoints
	adminAPI := api.Group("/admin", s.requireAdmin)
	adminAPI.GET("/orders/pending", s.GetPendingOrders)
	adminAPI.POST("/orders/:orderID/review", s.ReviewOrder)
	adminAPI.POST("/riders/:riderID/review", s.ReviewRider)
}

// requireAdmin rejects requests without the configured admin key.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		key := ctx.Request().Header.Get(HeaderAdminKey)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
			return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "Admin key is missing or invalid",
			})
		}
		return next(ctx)
	}
}

// identityFromHeader extracts a caller identity from a request header.
func identityFromHeader(ctx echo.Context, header string) (kernel.UUID, error) {
	value := ctx.Request().Header.Get(header)
	if value == "" {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusUnauthorized, header+" header is required")
	}

	id, err := kernel.UUIDFromString(value)
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, header+" header is not a valid UUID")
	}

	return id, nil
}

// pathUUID extracts a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, echo.NewHTTPError(http.StatusBadRequest, name+" is not a valid UUID")
	}
	return id, nil
}

// respondError maps application and domain errors onto HTTP statuses.
func respondError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: fmt.Sprintf("%v", httpErr.Message),
		})
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, commands.ErrOrderUnavailable):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrCustomerMismatch),
		errors.Is(err, order.ErrRiderMismatch),
		errors.Is(err, rider.ErrRiderNotApproved):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
