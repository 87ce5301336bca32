// Package riderrepo provides data transfer objects and mapping functions for
// rider persistence: the rider profile with its account status, and the
// lifetime stats counters keyed by rider.
package riderrepo

import (
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// RiderDTO represents the database structure for persisting rider aggregates.
type RiderDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	Phone         string
	Vehicle       string
	AccountStatus int `gorm:"index"`
}

// TableName specifies the database table name for rider entities.
func (RiderDTO) TableName() string {
	return "riders"
}

// StatsDTO represents the lifetime stats row, one per rider. Rows appear on
// a rider's first completed delivery.
type StatsDTO struct {
	RiderID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalEarnings   float64
	TotalDeliveries int
	LastUpdated     time.Time
}

// TableName specifies the database table name for rider stats.
func (StatsDTO) TableName() string {
	return "rider_stats"
}

func fromDomain(aggregate *rider.Rider) RiderDTO {
	return RiderDTO{
		ID:            aggregate.ID().Bytes(),
		Name:          aggregate.Name(),
		Phone:         aggregate.Phone(),
		Vehicle:       aggregate.Vehicle(),
		AccountStatus: int(aggregate.AccountStatus()),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, dto.Name, dto.Phone, dto.Vehicle, rider.AccountStatus(dto.AccountStatus))
}

func statsFromDomain(stats *rider.Stats) StatsDTO {
	return StatsDTO{
		RiderID:         stats.RiderID().Bytes(),
		TotalEarnings:   stats.TotalEarnings(),
		TotalDeliveries: stats.TotalDeliveries(),
		LastUpdated:     stats.LastUpdated(),
	}
}

func statsToDomain(dto StatsDTO) (*rider.Stats, error) {
	riderID, err := kernel.UUIDFromBytes(dto.RiderID[:])
	if err != nil {
		return nil, err
	}

	return rider.RestoreStats(riderID, dto.TotalEarnings, dto.TotalDeliveries, dto.LastUpdated)
}
