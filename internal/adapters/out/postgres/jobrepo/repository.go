package jobrepo

import (
	"context"
	"errors"
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"
	"rentalorders/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements ports.JobRepository using GORM.
type GormJobRepository struct {
	db *gorm.DB
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB) *GormJobRepository {
	return &GormJobRepository{db: db}
}

// Add saves a new pending job.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update persists a status transition, conditional on the status the
// aggregate was loaded with. This is what makes the pending -> running
// claim safe: of two concurrent executors, exactly one matches the guard.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&JobDTO{}).
		Where("id = ? AND status = ?", aggregate.ID().Bytes(), int(aggregate.PreviousStatus())).
		Updates(map[string]any{
			"status": int(aggregate.Status()),
			"result": aggregate.Result(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConcurrencyConflictError("job", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a job by its identifier.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPendingBefore retrieves jobs still pending that were created before
// the cutoff, oldest first. The reconciliation sweep re-dispatches them.
func (r *GormJobRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", int(job.Pending), cutoff).
		Order("created_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}

	return jobs, nil
}
