package repository

import (
	"context"

	"tracewing-backend/internal/model"

	"gorm.io/gorm"
)

// LocationSampleRepository is append-only: there is no update or delete.
type LocationSampleRepository interface {
	Create(ctx context.Context, sample *model.LocationSample) error
	List(ctx context.Context, employeeID *uint, limit int) ([]model.LocationSample, error)
	Count(ctx context.Context) (int64, error)
}

type locationSampleRepository struct {
	db *gorm.DB
}

func NewLocationSampleRepository(db *gorm.DB) LocationSampleRepository {
	return &locationSampleRepository{db}
}

func (r *locationSampleRepository) Create(ctx context.Context, sample *model.LocationSample) error {
	return translate(r.db.WithContext(ctx).Omit("GeofenceZone").Create(sample).Error)
}

func (r *locationSampleRepository) List(ctx context.Context, employeeID *uint, limit int) ([]model.LocationSample, error) {
	var samples []model.LocationSample
	query := r.db.WithContext(ctx).Preload("GeofenceZone")
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("recorded_at desc").Find(&samples).Error
	return samples, translate(err)
}

func (r *locationSampleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LocationSample{}).Count(&count).Error
	return count, translate(err)
}
