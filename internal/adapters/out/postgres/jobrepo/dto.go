// Package jobrepo provides data transfer objects and mapping functions for
// confirmation job persistence. Job identifiers are minted by the
// application, so the primary key is a native uuid column.
package jobrepo

import (
	"time"

	"rentalorders/internal/core/domain/model/job"
	"rentalorders/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for one confirmation job.
type JobDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   int64     `gorm:"index"`
	Status    int       `gorm:"index"`
	Result    *string
	CreatedAt time.Time `gorm:"index;autoCreateTime:false"`
}

// TableName specifies the database table name for confirmation jobs.
func (JobDTO) TableName() string {
	return "jobs"
}

// fromDomain converts a job aggregate to its database representation.
func fromDomain(aggregate *job.Job) JobDTO {
	return JobDTO{
		ID:        aggregate.ID().Bytes(),
		OrderID:   aggregate.OrderID(),
		Status:    int(aggregate.Status()),
		Result:    aggregate.Result(),
		CreatedAt: aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a job aggregate using RestoreJob.
// The restored aggregate remembers its stored status for conditional updates.
func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return job.RestoreJob(id, dto.OrderID, job.Status(dto.Status), dto.Result, dto.CreatedAt), nil
}
