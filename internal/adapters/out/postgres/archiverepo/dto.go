// Package archiverepo persists the immutable completed-order archive. One
// row is written per completed order and never updated; the earnings
// queries aggregate over this table at read time.
package archiverepo

import (
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// CompletedOrderDTO represents the archival record row. OrderID is the
// primary key, so double-archiving the same order violates the constraint
// instead of silently duplicating earnings.
type CompletedOrderDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	RiderID     uuid.UUID `gorm:"type:uuid;index"`
	CustomerID  uuid.UUID `gorm:"type:uuid"`
	ItemName    string
	TotalPrice  float64
	CompletedAt time.Time
}

// TableName specifies the database table name for archival records.
func (CompletedOrderDTO) TableName() string {
	return "completed_orders"
}

func fromDomain(record order.CompletedOrder) CompletedOrderDTO {
	return CompletedOrderDTO{
		OrderID:     record.OrderID().Bytes(),
		RiderID:     record.RiderID().Bytes(),
		CustomerID:  record.CustomerID().Bytes(),
		ItemName:    record.ItemName(),
		TotalPrice:  record.TotalPrice(),
		CompletedAt: record.CompletedAt(),
	}
}

func toDomain(dto CompletedOrderDTO) (order.CompletedOrder, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.CompletedOrder{}, err
	}

	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return order.CompletedOrder{}, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return order.CompletedOrder{}, err
	}

	return order.NewCompletedOrder(orderID, riderID, customerID, dto.ItemName, dto.TotalPrice, dto.CompletedAt)
}
