package usecase

import (
	"context"
	"errors"
	"testing"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"

	"github.com/shopspring/decimal"
)

func TestRecordInsideZone(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)
	office := env.zone(t, "Head Office", -0.9471, 100.4172, 100)

	sample, err := env.locationLogger().Record(context.Background(), emp.ID,
		geo.Point{Latitude: -0.9472, Longitude: 100.4172}, model.ActionCheckIn, t0)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if !sample.IsWithinGeofence {
		t.Fatal("IsWithinGeofence = false, want true")
	}
	if sample.GeofenceZoneID == nil || *sample.GeofenceZoneID != office.ID {
		t.Fatalf("GeofenceZoneID = %v, want %d", sample.GeofenceZoneID, office.ID)
	}
	if !sample.DistanceMeters.Valid || !sample.DistanceMeters.Decimal.IsZero() {
		t.Fatalf("DistanceMeters = %+v, want 0", sample.DistanceMeters)
	}

	stored, err := env.samples.List(context.Background(), &emp.ID, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(stored) != 1 || stored[0].ID != sample.ID || stored[0].Action != model.ActionCheckIn {
		t.Fatalf("stored samples = %+v, want the recorded one", stored)
	}
	if stored[0].GeofenceZone == nil || stored[0].GeofenceZone.Name != "Head Office" {
		t.Fatalf("stored sample zone = %+v, want Head Office", stored[0].GeofenceZone)
	}
}

func TestRecordOutsideEveryZoneStillStored(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)
	near := env.zone(t, "Branch", 0, 0.01, 50)
	env.zone(t, "Site", 1, 1, 50)

	p := geo.Point{Latitude: 0, Longitude: 0}
	sample, err := env.locationLogger().Record(context.Background(), emp.ID, p, model.ActionLocationUpdate, t0)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if sample.IsWithinGeofence {
		t.Fatal("IsWithinGeofence = true, want false")
	}
	if sample.GeofenceZoneID == nil || *sample.GeofenceZoneID != near.ID {
		t.Fatalf("GeofenceZoneID = %v, want nearest zone %d", sample.GeofenceZoneID, near.ID)
	}
	want := geo.Distance(near.Center(), p)
	got, _ := sample.DistanceMeters.Decimal.Float64()
	if got < want-0.01 || got > want+0.01 {
		t.Fatalf("DistanceMeters = %v, want %.2f", got, want)
	}
	if n := env.sampleCount(t); n != 1 {
		t.Fatalf("sample count = %d, want 1", n)
	}
}

func TestRecordWithoutAnyZone(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)

	sample, err := env.locationLogger().Record(context.Background(), emp.ID,
		geo.Point{Latitude: 10, Longitude: 10}, model.ActionLocationUpdate, t0)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if sample.IsWithinGeofence || sample.GeofenceZoneID != nil || sample.DistanceMeters.Valid {
		t.Fatalf("sample = %+v, want no zone and no distance", sample)
	}
	if n := env.sampleCount(t); n != 1 {
		t.Fatalf("sample count = %d, want 1", n)
	}
}

func TestRecordRejectsInvalidPoint(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)
	env.zone(t, "Head Office", 0, 0, 100)

	_, err := env.locationLogger().Record(context.Background(), emp.ID,
		geo.Point{Latitude: 0, Longitude: 181}, model.ActionCheckIn, t0)
	if !errors.Is(err, apperror.ErrInvalidCoordinates) {
		t.Fatalf("Record() error = %v, want InvalidCoordinates", err)
	}
	if n := env.sampleCount(t); n != 0 {
		t.Fatalf("sample count = %d, want 0", n)
	}
}

func TestRecordRejectsUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)

	_, err := env.locationLogger().Record(context.Background(), emp.ID,
		geo.Point{}, model.LocationAction("teleport"), t0)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("Record() error = %v, want InvalidInput", err)
	}
}

func TestRecordSkipsDeactivatedZone(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)
	office := env.zone(t, "Head Office", 0, 0, 100)
	recorder := env.locationLogger()
	ctx := context.Background()
	p := geo.Point{Latitude: 0, Longitude: 0.0001}

	first, err := recorder.Record(ctx, emp.ID, p, model.ActionLocationUpdate, t0)
	if err != nil || !first.IsWithinGeofence {
		t.Fatalf("first Record() = %+v, %v; want within", first, err)
	}

	if err := env.zones.SetActive(ctx, office.ID, false); err != nil {
		t.Fatalf("SetActive() error = %v", err)
	}

	second, err := recorder.Record(ctx, emp.ID, p, model.ActionLocationUpdate, t0)
	if err != nil {
		t.Fatalf("second Record() error = %v", err)
	}
	if second.IsWithinGeofence || second.GeofenceZoneID != nil {
		t.Fatalf("second sample = %+v, want no zone after deactivation", second)
	}

	// the earlier sample keeps pointing at the zone
	stored, _ := env.samples.List(ctx, &emp.ID, 0)
	var kept bool
	for _, s := range stored {
		if s.ID == first.ID && s.GeofenceZoneID != nil && *s.GeofenceZoneID == office.ID {
			kept = true
		}
	}
	if !kept {
		t.Fatal("historical sample lost its zone reference")
	}
}

func TestRecordNearAntipodalZone(t *testing.T) {
	env := newTestEnv(t)
	emp := env.employee(t, "EMP0001", model.RoleEmployee)
	env.zone(t, "Far Side", 0.02, 100.37, 100)
	near := env.zone(t, "Coast", -0.02, -79.0, 100)

	sample, err := env.locationLogger().Record(context.Background(), emp.ID,
		geo.Point{Latitude: -0.02, Longitude: -79.63}, model.ActionLocationUpdate, t0)
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if sample.GeofenceZoneID == nil || *sample.GeofenceZoneID != near.ID {
		t.Fatalf("GeofenceZoneID = %v, want nearest zone %d", sample.GeofenceZoneID, near.ID)
	}
	if !sample.DistanceMeters.Valid || sample.DistanceMeters.Decimal.LessThanOrEqual(decimal.Zero) {
		t.Fatalf("DistanceMeters = %+v, want a positive distance", sample.DistanceMeters)
	}
}
