package database

import (
	"context"
	"fmt"
	"log/slog"

	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"
	"tracewing-backend/internal/usecase"

	"gorm.io/gorm"
)

type SeedOptions struct {
	AdminPassword    string
	EmployeePassword string
}

// SeedAll creates the first administrator, a sample employee and the head
// office zone. Running it again only resets the two passwords.
func SeedAll(ctx context.Context, db *gorm.DB, opts SeedOptions, log *slog.Logger) error {
	employees := repository.NewEmployeeRepository(db)
	zones := repository.NewGeofenceRepository(db)

	// 1. Head office zone
	office := &model.GeofenceZone{
		Name:      "Head Office",
		Type:      model.ZoneOffice,
		Latitude:  -0.9416,
		Longitude: 100.3700,
		Radius:    model.DefaultZoneRadius,
		Address:   "Jl. Khatib Sulaiman No. 1",
		IsActive:  true,
	}
	if err := zones.FirstOrCreateByName(ctx, office); err != nil {
		return fmt.Errorf("seed geofence %q: %w", office.Name, err)
	}
	log.Info("seeded geofence", "zone_id", office.ID, "name", office.Name)

	// 2. Accounts
	accounts := []struct {
		employee model.Employee
		password string
	}{
		{model.Employee{EmployeeCode: "ADM0001", Name: "System Administrator", Email: "admin@tracewing.local", Position: "Administrator", Role: model.RoleAdmin, IsActive: true}, opts.AdminPassword},
		{model.Employee{EmployeeCode: "EMP0001", Name: "Sample Employee", Email: "employee@tracewing.local", Position: "Staff", Role: model.RoleEmployee, IsActive: true}, opts.EmployeePassword},
	}
	for _, a := range accounts {
		hash, err := usecase.HashPassword(a.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", a.employee.EmployeeCode, err)
		}
		employee := a.employee
		employee.Password = hash
		if err := employees.FirstOrCreate(ctx, &employee); err != nil {
			return fmt.Errorf("seed employee %s: %w", employee.EmployeeCode, err)
		}
		// keep the password in sync even when the account already existed
		if err := employees.UpdatePassword(ctx, employee.ID, hash); err != nil {
			return fmt.Errorf("reset password for %s: %w", employee.EmployeeCode, err)
		}
		log.Info("seeded employee", "employee_code", employee.EmployeeCode, "role", employee.Role)
	}

	return nil
}
