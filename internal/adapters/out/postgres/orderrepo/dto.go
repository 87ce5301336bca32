// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Customer contact details are denormalized into the row because they are
// frozen at creation time; the rider columns stay NULL until a rider claims
// the order. Indexed by status and rider for the work queue query.
type OrderDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index"`
	RiderID         *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
	DeliveryLat     float64
	DeliveryLng     float64
	RiderLat        *float64
	RiderLng        *float64
	ItemName        string
	Quantity        int
	TotalPrice      float64
	DeliveryFee     float64
	Status          int       `gorm:"index"`
	CreatedAt       time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		CustomerName:    aggregate.Customer().Name(),
		CustomerEmail:   aggregate.Customer().Email(),
		CustomerPhone:   aggregate.Customer().Phone(),
		CustomerAddress: aggregate.Customer().Address(),
		CustomerCity:    aggregate.Customer().City(),
		DeliveryLat:     aggregate.DeliveryPoint().Lat(),
		DeliveryLng:     aggregate.DeliveryPoint().Lng(),
		ItemName:        aggregate.ItemName(),
		Quantity:        aggregate.Quantity(),
		TotalPrice:      aggregate.TotalPrice(),
		DeliveryFee:     aggregate.DeliveryFee(),
		Status:          int(aggregate.Status()),
		CreatedAt:       aggregate.CreatedAt(),
	}

	if id := aggregate.Rider(); id != nil {
		raw := id.Bytes()
		dto.RiderID = &raw
	}

	if position := aggregate.RiderPosition(); position != nil {
		lat := position.Lat()
		lng := position.Lng()
		dto.RiderLat = &lat
		dto.RiderLng = &lng
	}

	return dto
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status and rider assignment
// using RestoreOrder, so a corrupt row fails loudly here instead of leaking
// into the domain.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(
		dto.CustomerName,
		dto.CustomerEmail,
		dto.CustomerPhone,
		dto.CustomerAddress,
		dto.CustomerCity,
	)
	if err != nil {
		return nil, err
	}

	deliveryPoint, err := kernel.NewGeoPoint(dto.DeliveryLat, dto.DeliveryLng)
	if err != nil {
		return nil, err
	}

	var riderID *kernel.UUID
	if dto.RiderID != nil {
		rID, riderErr := kernel.UUIDFromBytes((*dto.RiderID)[:])
		if riderErr != nil {
			return nil, riderErr
		}

		riderID = &rID
	}

	var riderPosition *kernel.GeoPoint
	if dto.RiderLat != nil && dto.RiderLng != nil {
		position, posErr := kernel.NewGeoPoint(*dto.RiderLat, *dto.RiderLng)
		if posErr != nil {
			return nil, posErr
		}

		riderPosition = &position
	}

	return order.RestoreOrder(
		id,
		customerID,
		customer,
		deliveryPoint,
		dto.ItemName,
		dto.Quantity,
		dto.TotalPrice,
		dto.DeliveryFee,
		dto.CreatedAt,
		order.Status(dto.Status),
		riderID,
		riderPosition,
	)
}
