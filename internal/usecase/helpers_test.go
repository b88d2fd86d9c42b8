package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"tracewing-backend/config"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	employees repository.EmployeeRepository
	zones     repository.GeofenceRepository
	days      repository.AttendanceRepository
	samples   repository.LocationSampleRepository
	log       *slog.Logger
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := config.ConnectDB("sqlite", filepath.Join(t.TempDir(), "tracewing.db"), logger.Silent)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{
		db:        db,
		employees: repository.NewEmployeeRepository(db),
		zones:     repository.NewGeofenceRepository(db),
		days:      repository.NewAttendanceRepository(db),
		samples:   repository.NewLocationSampleRepository(db),
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (e *testEnv) employee(t *testing.T, code, role string) *model.Employee {
	t.Helper()
	emp := &model.Employee{EmployeeCode: code, Name: "Employee " + code, Role: role, IsActive: true}
	if err := e.employees.Create(context.Background(), emp); err != nil {
		t.Fatalf("create employee %s: %v", code, err)
	}
	return emp
}

func (e *testEnv) zone(t *testing.T, name string, lat, lng float64, radius int) *model.GeofenceZone {
	t.Helper()
	z := &model.GeofenceZone{Name: name, Type: model.ZoneOffice, Latitude: lat, Longitude: lng, Radius: radius, IsActive: true}
	if err := e.zones.Create(context.Background(), z); err != nil {
		t.Fatalf("create zone %s: %v", name, err)
	}
	return z
}

func (e *testEnv) ledger() *AttendanceLedger {
	return NewAttendanceLedger(e.days, e.employees, nil)
}

func (e *testEnv) locationLogger() *LocationLogger {
	return NewLocationLogger(NewGeofenceResolver(NewGeofenceRegistry(e.zones)), e.samples, e.log)
}

func (e *testEnv) service(notifier CheckOutNotifier) *AttendanceService {
	return NewAttendanceService(e.ledger(), e.locationLogger(), e.employees, e.days, e.samples, notifier, e.log)
}

func (e *testEnv) sampleCount(t *testing.T) int64 {
	t.Helper()
	n, err := e.samples.Count(context.Background())
	if err != nil {
		t.Fatalf("count samples: %v", err)
	}
	return n
}
