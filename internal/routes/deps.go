package routes

import (
	"log/slog"

	"tracewing-backend/config"
	"tracewing-backend/internal/repository"
	"tracewing-backend/internal/usecase"

	"gorm.io/gorm"
)

// Deps is what every route group needs to build its handlers.
type Deps struct {
	DB       *gorm.DB
	Config   config.Config
	Log      *slog.Logger
	Notifier usecase.CheckOutNotifier
}

// NewAttendanceService wires the attendance pipeline over d.DB. It is shared
// by the HTTP routes and the MQTT ingester.
func NewAttendanceService(d Deps) *usecase.AttendanceService {
	employees := repository.NewEmployeeRepository(d.DB)
	days := repository.NewAttendanceRepository(d.DB)
	samples := repository.NewLocationSampleRepository(d.DB)
	zones := repository.NewGeofenceRepository(d.DB)

	ledger := usecase.NewAttendanceLedger(days, employees, d.Config.AttendanceLocation)
	resolver := usecase.NewGeofenceResolver(usecase.NewGeofenceRegistry(zones))
	locations := usecase.NewLocationLogger(resolver, samples, d.Log)

	return usecase.NewAttendanceService(ledger, locations, employees, days, samples, d.Notifier, d.Log)
}
