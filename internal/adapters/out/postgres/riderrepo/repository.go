package riderrepo

import (
	"context"
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/rider"
	"brewride/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRiderRepository implements RiderRepository using GORM.
type GormRiderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRiderRepository creates a new GORM rider repository.
func NewGormRiderRepository(db *gorm.DB, tracker aggregateTracker) *GormRiderRepository {
	return &GormRiderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rider to the database.
func (r *GormRiderRepository) Add(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing rider to the database.
func (r *GormRiderRepository) Update(ctx context.Context, aggregate *rider.Rider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&RiderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rider by ID.
func (r *GormRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RiderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rider", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GormRiderStatsRepository implements RiderStatsRepository using GORM.
type GormRiderStatsRepository struct {
	db *gorm.DB
}

// NewGormRiderStatsRepository creates a new GORM rider stats repository.
func NewGormRiderStatsRepository(db *gorm.DB) *GormRiderStatsRepository {
	return &GormRiderStatsRepository{db: db}
}

// Get retrieves the stats row for a rider.
func (r *GormRiderStatsRepository) Get(ctx context.Context, riderID kernel.UUID) (*rider.Stats, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dto StatsDTO
	if err := r.db.WithContext(ctx).First(&dto, "rider_id = ?", riderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("riderStats", riderID.String())
		}
		return nil, err
	}

	return statsToDomain(dto)
}

// Save upserts the stats row: the first completed delivery for a rider
// creates it, later deliveries update it in place.
func (r *GormRiderStatsRepository) Save(ctx context.Context, stats *rider.Stats) error {
	if err := stats.Validate(); err != nil {
		return err
	}

	dto := statsFromDomain(stats)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "rider_id"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
