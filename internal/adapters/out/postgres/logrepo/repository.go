package logrepo

import (
	"context"

	"rentalorders/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormOrderLogRepository implements ports.OrderLogRepository using GORM.
// Append-only: the repository exposes no update or delete operation.
type GormOrderLogRepository struct {
	db *gorm.DB
}

// NewGormOrderLogRepository creates a new GORM audit log repository.
func NewGormOrderLogRepository(db *gorm.DB) *GormOrderLogRepository {
	return &GormOrderLogRepository{db: db}
}

// Add appends an audit record; the store assigns its identifier.
func (r *GormOrderLogRepository) Add(ctx context.Context, record *order.OrderLog) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllForOrder retrieves one order's audit trail ordered by (timestamp, logId).
func (r *GormOrderLogRepository) GetAllForOrder(ctx context.Context, orderID int64) ([]*order.OrderLog, error) {
	var dtos []OrderLogDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("timestamp ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	records := make([]*order.OrderLog, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, toDomain(dto))
	}

	return records, nil
}
