package repository

import (
	"context"

	"tracewing-backend/internal/model"

	"gorm.io/gorm"
)

type GeofenceRepository interface {
	// ListActive returns active zones ordered by id, read in a single query.
	ListActive(ctx context.Context) ([]model.GeofenceZone, error)
	ListAll(ctx context.Context) ([]model.GeofenceZone, error)
	GetByID(ctx context.Context, id uint) (*model.GeofenceZone, error)
	Create(ctx context.Context, zone *model.GeofenceZone) error
	Update(ctx context.Context, zone *model.GeofenceZone) error
	SetActive(ctx context.Context, id uint, active bool) error
	FirstOrCreateByName(ctx context.Context, zone *model.GeofenceZone) error
}

type geofenceRepository struct {
	db *gorm.DB
}

func NewGeofenceRepository(db *gorm.DB) GeofenceRepository {
	return &geofenceRepository{db}
}

func (r *geofenceRepository) ListActive(ctx context.Context) ([]model.GeofenceZone, error) {
	var zones []model.GeofenceZone
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("id asc").Find(&zones).Error
	return zones, translate(err)
}

func (r *geofenceRepository) ListAll(ctx context.Context) ([]model.GeofenceZone, error) {
	var zones []model.GeofenceZone
	err := r.db.WithContext(ctx).Order("id asc").Find(&zones).Error
	return zones, translate(err)
}

func (r *geofenceRepository) GetByID(ctx context.Context, id uint) (*model.GeofenceZone, error) {
	var zone model.GeofenceZone
	if err := r.db.WithContext(ctx).First(&zone, id).Error; err != nil {
		return nil, translate(err)
	}
	return &zone, nil
}

func (r *geofenceRepository) Create(ctx context.Context, zone *model.GeofenceZone) error {
	return translate(r.db.WithContext(ctx).Create(zone).Error)
}

func (r *geofenceRepository) Update(ctx context.Context, zone *model.GeofenceZone) error {
	return translate(r.db.WithContext(ctx).Save(zone).Error)
}

func (r *geofenceRepository) SetActive(ctx context.Context, id uint, active bool) error {
	return translate(r.db.WithContext(ctx).Model(&model.GeofenceZone{}).Where("id = ?", id).Update("is_active", active).Error)
}

func (r *geofenceRepository) FirstOrCreateByName(ctx context.Context, zone *model.GeofenceZone) error {
	return translate(r.db.WithContext(ctx).Where(model.GeofenceZone{Name: zone.Name}).FirstOrCreate(zone).Error)
}
