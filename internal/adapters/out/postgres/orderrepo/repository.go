package orderrepo

import (
	"context"
	"errors"
	"time"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/core/ports"
	"brewride/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order to the database.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Accept atomically claims an approved order for a rider. The WHERE clause
// is the compare-and-swap: the update only lands if the row is still
// approved and unclaimed, so when two riders race exactly one sees
// RowsAffected == 1 and the other gets ErrStatusPreconditionFailed.
func (r *GormOrderRepository) Accept(ctx context.Context, orderID kernel.UUID, riderID kernel.UUID) error {
	if err := errors.Join(orderID.Validate(), riderID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND rider_id IS NULL", orderID.Bytes(), int(order.Approved)).
		Updates(map[string]any{
			"status":   int(order.Accepted),
			"rider_id": riderID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusPreconditionFailed
	}

	return nil
}

// CompleteIfDelivered atomically moves a delivered order to completed. A row
// that already left delivered status (including one already completed) is
// untouched and reported via ErrStatusPreconditionFailed, which makes
// duplicate completion attempts harmless.
func (r *GormOrderRepository) CompleteIfDelivered(ctx context.Context, orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", orderID.Bytes(), int(order.Delivered)).
		Update("status", int(order.Completed))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusPreconditionFailed
	}

	return nil
}

// UpdatePosition writes the rider position columns without touching the rest
// of the row. The WHERE clause pins the row to this rider and the en-route
// statuses, so a report racing a status change cannot overwrite the newer
// row with state read before the change.
func (r *GormOrderRepository) UpdatePosition(
	ctx context.Context,
	orderID kernel.UUID,
	riderID kernel.UUID,
	position kernel.GeoPoint,
) error {
	if err := errors.Join(orderID.Validate(), riderID.Validate(), position.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND rider_id = ? AND status IN ?", orderID.Bytes(), riderID.Bytes(),
			[]int{int(order.Accepted), int(order.PickedUp)}).
		Updates(map[string]any{
			"rider_lat": position.Lat(),
			"rider_lng": position.Lng(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusPreconditionFailed
	}

	return nil
}

// GetActiveForRider retrieves the rider's work queue: approved unclaimed
// orders plus this rider's in-flight claims, limited to orders created at or
// after the since cutoff.
func (r *GormOrderRepository) GetActiveForRider(
	ctx context.Context,
	riderID kernel.UUID,
	since time.Time,
) ([]*order.Order, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Where(
			r.db.Where("status = ? AND rider_id IS NULL", int(order.Approved)).
				Or("rider_id = ? AND status IN ?", riderID.Bytes(),
					[]int{int(order.Accepted), int(order.PickedUp), int(order.Delivered)}),
		).
		Order("created_at DESC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllActive retrieves all orders in a non-terminal status.
func (r *GormOrderRepository) GetAllActive(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{
			int(order.Rejected), int(order.Cancelled), int(order.Completed),
		}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetCompletedByRider retrieves all of a rider's completed orders.
func (r *GormOrderRepository) GetCompletedByRider(
	ctx context.Context,
	riderID kernel.UUID,
) ([]*order.Order, error) {
	if err := riderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("rider_id = ? AND status = ?", riderID.Bytes(), int(order.Completed)).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, aggregate)
	}

	return orders, nil
}
