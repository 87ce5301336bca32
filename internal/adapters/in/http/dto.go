package http

import (
	"time"

	"brewride/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest carries a new order placement.
type CreateOrderRequest struct {
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	CustomerCity    string  `json:"customer_city"`
	DeliveryLat     float64 `json:"delivery_lat"`
	DeliveryLng     float64 `json:"delivery_lng"`
	ItemName        string  `json:"item_name"`
	Quantity        int     `json:"quantity"`
	TotalPrice      float64 `json:"total_price"`
}

// CreateOrderResponse returns the identifier assigned to a placed order.
type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// ReviewRequest carries an admin approve-or-reject decision.
type ReviewRequest struct {
	Approve bool `json:"approve"`
}

// RegisterRiderRequest carries a rider account application.
type RegisterRiderRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

// RegisterRiderResponse returns the identifier assigned to a new rider.
type RegisterRiderResponse struct {
	RiderID string `json:"rider_id"`
}

// PositionRequest carries a rider position report.
type PositionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OrderSummaryResponse is the listing row shown to admins and riders.
type OrderSummaryResponse struct {
	OrderID         string    `json:"order_id"`
	Status          string    `json:"status"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerAddress string    `json:"customer_address"`
	CustomerCity    string    `json:"customer_city"`
	DeliveryLat     float64   `json:"delivery_lat"`
	DeliveryLng     float64   `json:"delivery_lng"`
	ItemName        string    `json:"item_name"`
	Quantity        int       `json:"quantity"`
	TotalPrice      float64   `json:"total_price"`
	DeliveryFee     float64   `json:"delivery_fee"`
	Claimed         bool      `json:"claimed"`
	CreatedAt       time.Time `json:"created_at"`
}

func toOrderSummaryResponse(summary queries.OrderSummary) OrderSummaryResponse {
	return OrderSummaryResponse{
		OrderID:         summary.ID.String(),
		Status:          summary.Status.String(),
		CustomerName:    summary.CustomerName,
		CustomerPhone:   summary.CustomerPhone,
		CustomerAddress: summary.Address,
		CustomerCity:    summary.City,
		DeliveryLat:     summary.DeliveryPoint.Lat(),
		DeliveryLng:     summary.DeliveryPoint.Lng(),
		ItemName:        summary.ItemName,
		Quantity:        summary.Quantity,
		TotalPrice:      summary.TotalPrice,
		DeliveryFee:     summary.DeliveryFee,
		Claimed:         summary.Claimed,
		CreatedAt:       summary.CreatedAt,
	}
}

func toOrderSummaryResponses(summaries []queries.OrderSummary) []OrderSummaryResponse {
	responses := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = toOrderSummaryResponse(summary)
	}
	return responses
}

// GeoPointResponse is one coordinate pair on the tracking map.
type GeoPointResponse struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TrackOrderResponse is the live tracking snapshot for one order.
type TrackOrderResponse struct {
	OrderID       string             `json:"order_id"`
	Status        string             `json:"status"`
	RiderID       *string            `json:"rider_id,omitempty"`
	RiderPosition *GeoPointResponse  `json:"rider_position,omitempty"`
	DeliveryPoint GeoPointResponse   `json:"delivery_point"`
	DistanceKm    *float64           `json:"distance_km,omitempty"`
	Route         []GeoPointResponse `json:"route"`
}

func toTrackOrderResponse(snapshot queries.TrackOrderQueryResponse) TrackOrderResponse {
	response := TrackOrderResponse{
		OrderID: snapshot.OrderID.String(),
		Status:  snapshot.Status.String(),
		DeliveryPoint: GeoPointResponse{
			Lat: snapshot.DeliveryPoint.Lat(),
			Lng: snapshot.DeliveryPoint.Lng(),
		},
		DistanceKm: snapshot.DistanceKm,
		Route:      make([]GeoPointResponse, len(snapshot.Route)),
	}

	if snapshot.RiderID != nil {
		riderID := snapshot.RiderID.String()
		response.RiderID = &riderID
	}
	if snapshot.RiderPosition != nil {
		response.RiderPosition = &GeoPointResponse{
			Lat: snapshot.RiderPosition.Lat(),
			Lng: snapshot.RiderPosition.Lng(),
		}
	}
	for i, point := range snapshot.Route {
		response.Route[i] = GeoPointResponse{Lat: point.Lat(), Lng: point.Lng()}
	}

	return response
}

// RiderStatsResponse is the earnings dashboard payload.
type RiderStatsResponse struct {
	RiderID         string    `json:"rider_id"`
	TotalEarnings   float64   `json:"total_earnings"`
	TotalDeliveries int       `json:"total_deliveries"`
	DailyEarnings   float64   `json:"daily_earnings"`
	WeeklyEarnings  float64   `json:"weekly_earnings"`
	MonthlyEarnings float64   `json:"monthly_earnings"`
	LastUpdated     time.Time `json:"last_updated"`
}

func toRiderStatsResponse(stats queries.GetRiderStatsQueryResponse) RiderStatsResponse {
	return RiderStatsResponse{
		RiderID:         stats.RiderID.String(),
		TotalEarnings:   stats.TotalEarnings,
		TotalDeliveries: stats.TotalDeliveries,
		DailyEarnings:   stats.DailyEarnings,
		WeeklyEarnings:  stats.WeeklyEarnings,
		MonthlyEarnings: stats.MonthlyEarnings,
		LastUpdated:     stats.LastUpdated,
	}
}
