package usecase

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"
)

// GeofenceRegistry exposes the zones that currently take part in resolution.
type GeofenceRegistry interface {
	ActiveZones(ctx context.Context) ([]model.GeofenceZone, error)
}

type repositoryRegistry struct {
	repo repository.GeofenceRepository
}

// NewGeofenceRegistry returns a registry that reads a fresh snapshot from the
// repository on every call, so zone edits apply to the very next event.
func NewGeofenceRegistry(repo repository.GeofenceRepository) GeofenceRegistry {
	return &repositoryRegistry{repo: repo}
}

func (r *repositoryRegistry) ActiveZones(ctx context.Context) ([]model.GeofenceZone, error) {
	zones, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active geofences: %w", err)
	}
	return zones, nil
}

// Resolution is the outcome of classifying a point against the active zones.
// Zone is the containing zone when WithinGeofence is set, else the nearest one.
// Zone and DistanceMeters are nil only when no active zone exists.
type Resolution struct {
	Zone           *model.GeofenceZone
	WithinGeofence bool
	DistanceMeters *float64
}

type GeofenceResolver struct {
	registry GeofenceRegistry
}

func NewGeofenceResolver(registry GeofenceRegistry) *GeofenceResolver {
	return &GeofenceResolver{registry: registry}
}

// Resolve classifies p against one snapshot of the registry.
func (r *GeofenceResolver) Resolve(ctx context.Context, p geo.Point) (Resolution, error) {
	res, _, err := r.Check(ctx, p)
	return res, err
}

// Check returns the resolution together with every active zone containing p,
// both computed from the same snapshot.
func (r *GeofenceResolver) Check(ctx context.Context, p geo.Point) (Resolution, []model.GeofenceZone, error) {
	if err := p.Validate(); err != nil {
		return Resolution{}, nil, err
	}

	zones, err := r.registry.ActiveZones(ctx)
	if err != nil {
		return Resolution{}, nil, err
	}
	zones = sortedByID(zones)

	containing := []model.GeofenceZone{}
	for i := range zones {
		if inside(geo.Distance(zones[i].Center(), p), zones[i].Radius) {
			containing = append(containing, zones[i])
		}
	}

	return Classify(zones, p), containing, nil
}

// Classify applies the resolution policy to zones: the first containing zone in
// ascending id order wins with distance 0; otherwise the nearest zone is reported
// with its distance. A zone exactly radius meters away contains the point.
func Classify(zones []model.GeofenceZone, p geo.Point) Resolution {
	zones = sortedByID(zones)

	var nearest *model.GeofenceZone
	var minDistance float64

	for i := range zones {
		zone := &zones[i]
		distance := geo.Distance(zone.Center(), p)

		if inside(distance, zone.Radius) {
			zero := 0.0
			return Resolution{Zone: zone, WithinGeofence: true, DistanceMeters: &zero}
		}

		if nearest == nil || distance < minDistance {
			nearest = zone
			minDistance = distance
		}
	}

	if nearest == nil {
		return Resolution{}
	}
	return Resolution{Zone: nearest, DistanceMeters: &minDistance}
}

// inside treats the circle edge as part of the zone.
func inside(distance float64, radius int) bool {
	return distance <= float64(radius)
}

func sortedByID(zones []model.GeofenceZone) []model.GeofenceZone {
	if slices.IsSortedFunc(zones, compareZoneID) {
		return zones
	}
	sorted := slices.Clone(zones)
	slices.SortStableFunc(sorted, compareZoneID)
	return sorted
}

func compareZoneID(a, b model.GeofenceZone) int {
	return cmp.Compare(a.ID, b.ID)
}
