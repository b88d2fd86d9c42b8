package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"
)

// GeofenceInput carries a create or edit request. Nil fields keep their current
// value on edit and take the defaults on create.
type GeofenceInput struct {
	Name      *string
	Type      *model.ZoneType
	Latitude  *float64
	Longitude *float64
	Radius    *int
	Address   *string
	IsActive  *bool
}

type LocationCheck struct {
	Point      geo.Point
	Containing []model.GeofenceZone
	Resolution Resolution
}

// GeofenceUsecase is the administrative side of the zone registry plus the
// ad-hoc location check.
type GeofenceUsecase struct {
	repo     repository.GeofenceRepository
	resolver *GeofenceResolver
	log      *slog.Logger
}

func NewGeofenceUsecase(repo repository.GeofenceRepository, resolver *GeofenceResolver, log *slog.Logger) *GeofenceUsecase {
	return &GeofenceUsecase{repo: repo, resolver: resolver, log: log}
}

func (u *GeofenceUsecase) List(ctx context.Context) ([]model.GeofenceZone, error) {
	zones, err := u.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list geofences: %w", err)
	}
	return zones, nil
}

func (u *GeofenceUsecase) Create(ctx context.Context, actor Viewer, in GeofenceInput) (*model.GeofenceZone, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}
	if in.Latitude == nil || in.Longitude == nil {
		return nil, geo.ErrMissingCoordinates
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "name is required", nil)
	}

	zone := &model.GeofenceZone{
		Type:     model.ZoneOffice,
		Radius:   model.DefaultZoneRadius,
		IsActive: true,
	}
	apply(zone, in)
	if err := validateZone(zone); err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, zone); err != nil {
		return nil, fmt.Errorf("create geofence: %w", err)
	}
	u.log.Info("geofence created", "zone_id", zone.ID, "name", zone.Name, "by", actor.EmployeeID)
	return zone, nil
}

func (u *GeofenceUsecase) Update(ctx context.Context, actor Viewer, id uint, in GeofenceInput) (*model.GeofenceZone, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	zone, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(zone, in)
	if err := validateZone(zone); err != nil {
		return nil, err
	}

	if err := u.repo.Update(ctx, zone); err != nil {
		return nil, fmt.Errorf("update geofence %d: %w", id, err)
	}
	u.log.Info("geofence updated", "zone_id", zone.ID, "active", zone.IsActive, "by", actor.EmployeeID)
	return zone, nil
}

// Deactivate removes a zone from resolution. Samples keep referencing it.
func (u *GeofenceUsecase) Deactivate(ctx context.Context, actor Viewer, id uint) (*model.GeofenceZone, error) {
	if !actor.IsAdmin() {
		return nil, apperror.ErrForbidden
	}

	zone, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.repo.SetActive(ctx, id, false); err != nil {
		return nil, fmt.Errorf("deactivate geofence %d: %w", id, err)
	}
	zone.IsActive = false
	u.log.Info("geofence deactivated", "zone_id", id, "by", actor.EmployeeID)
	return zone, nil
}

// CheckLocation classifies p without recording a sample.
func (u *GeofenceUsecase) CheckLocation(ctx context.Context, p geo.Point) (*LocationCheck, error) {
	res, containing, err := u.resolver.Check(ctx, p)
	if err != nil {
		return nil, err
	}
	return &LocationCheck{Point: p, Containing: containing, Resolution: res}, nil
}

func (u *GeofenceUsecase) get(ctx context.Context, id uint) (*model.GeofenceZone, error) {
	zone, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindNotFound, fmt.Sprintf("geofence %d not found", id), nil)
		}
		return nil, fmt.Errorf("get geofence %d: %w", id, err)
	}
	return zone, nil
}

func apply(zone *model.GeofenceZone, in GeofenceInput) {
	if in.Name != nil {
		zone.Name = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil && *in.Type != "" {
		zone.Type = *in.Type
	}
	if in.Latitude != nil {
		zone.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		zone.Longitude = *in.Longitude
	}
	if in.Radius != nil {
		zone.Radius = *in.Radius
	}
	if in.Address != nil {
		zone.Address = *in.Address
	}
	if in.IsActive != nil {
		zone.IsActive = *in.IsActive
	}
}

func validateZone(zone *model.GeofenceZone) error {
	if err := zone.Center().Validate(); err != nil {
		return err
	}
	if zone.Name == "" {
		return apperror.Wrap(apperror.KindInvalidInput, "name is required", nil)
	}
	if !zone.Type.Valid() {
		return apperror.Wrap(apperror.KindInvalidInput, fmt.Sprintf("location_type %q must be one of office, branch, site, client", zone.Type), nil)
	}
	if zone.Radius <= 0 {
		return apperror.Wrap(apperror.KindInvalidInput, "radius must be a positive number of meters", nil)
	}
	return nil
}
