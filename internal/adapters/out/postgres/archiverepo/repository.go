package archiverepo

import (
	"context"
	"errors"

	"brewride/internal/core/domain/model/kernel"
	"brewride/internal/core/domain/model/order"
	"brewride/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCompletedOrderRepository implements CompletedOrderRepository using GORM.
type GormCompletedOrderRepository struct {
	db *gorm.DB
}

// NewGormCompletedOrderRepository creates a new GORM archival repository.
func NewGormCompletedOrderRepository(db *gorm.DB) *GormCompletedOrderRepository {
	return &GormCompletedOrderRepository{db: db}
}

// Add saves an archival record. Inserting a second record for the same
// order fails on the primary key constraint.
func (r *GormCompletedOrderRepository) Add(ctx context.Context, record order.CompletedOrder) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByOrderID retrieves the archival record for an order.
func (r *GormCompletedOrderRepository) GetByOrderID(
	ctx context.Context,
	orderID kernel.UUID,
) (order.CompletedOrder, error) {
	if err := orderID.Validate(); err != nil {
		return order.CompletedOrder{}, err
	}

	var dto CompletedOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.CompletedOrder{}, errs.NewObjectNotFoundError("completedOrder", orderID.String())
		}
		return order.CompletedOrder{}, err
	}

	return toDomain(dto)
}
