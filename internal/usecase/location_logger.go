package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// LocationLogger writes one LocationSample per location event, matched or not.
type LocationLogger struct {
	resolver *GeofenceResolver
	repo     repository.LocationSampleRepository
	log      *slog.Logger
}

func NewLocationLogger(resolver *GeofenceResolver, repo repository.LocationSampleRepository, log *slog.Logger) *LocationLogger {
	return &LocationLogger{resolver: resolver, repo: repo, log: log}
}

// Record resolves p and appends the sample. A point outside every zone, or no
// zone at all, is a normal outcome and is stored like any other.
func (l *LocationLogger) Record(ctx context.Context, employeeID uint, p geo.Point, action model.LocationAction, at time.Time) (*model.LocationSample, error) {
	if !action.Valid() {
		return nil, apperror.Wrap(apperror.KindInvalidInput, fmt.Sprintf("unknown location action %q", action), nil)
	}

	res, err := l.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	sample := &model.LocationSample{
		EmployeeID:       employeeID,
		Latitude:         p.Latitude,
		Longitude:        p.Longitude,
		Action:           action,
		RecordedAt:       normalize(at),
		IsWithinGeofence: res.WithinGeofence,
	}
	if res.Zone != nil {
		sample.GeofenceZoneID = &res.Zone.ID
	}
	if res.DistanceMeters != nil {
		sample.DistanceMeters = decimal.NewNullDecimal(decimal.NewFromFloat(*res.DistanceMeters).Round(2))
	}

	if err := l.repo.Create(ctx, sample); err != nil {
		return nil, fmt.Errorf("record location sample: %w", err)
	}
	sample.GeofenceZone = res.Zone

	attrs := []any{"employee_id", employeeID, "action", action, "within_geofence", res.WithinGeofence}
	if res.Zone != nil {
		attrs = append(attrs, "zone_id", res.Zone.ID)
	}
	l.log.Debug("location sample recorded", attrs...)
	return sample, nil
}
