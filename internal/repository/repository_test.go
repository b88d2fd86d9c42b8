package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"tracewing-backend/config"
	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB("sqlite", filepath.Join(t.TempDir(), "repo.db"), logger.Silent)
	if err != nil {
		t.Fatalf("connect test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedEmployee(t *testing.T, db *gorm.DB, code string) *model.Employee {
	t.Helper()
	emp := &model.Employee{EmployeeCode: code, Name: code, IsActive: true}
	if err := NewEmployeeRepository(db).Create(context.Background(), emp); err != nil {
		t.Fatal(err)
	}
	return emp
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"not found", gorm.ErrRecordNotFound, ErrNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, ErrDuplicate},
		{"sqlite text", errors.New("constraint failed: UNIQUE constraint failed: attendance_days.employee_id"), ErrDuplicate},
		{"mysql text", errors.New("Error 1062: Duplicate entry '1-2025-03-10'"), ErrDuplicate},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), apperror.ErrUnavailable},
		{"canceled", fmt.Errorf("query: %w", context.Canceled), apperror.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("translate(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Fatalf("translate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAttendanceCreateDuplicate(t *testing.T) {
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP0001")
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	at := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	first := &model.AttendanceDay{EmployeeID: emp.ID, Date: "2025-03-10", CheckInAt: &at, Status: model.StatusPresent}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second := &model.AttendanceDay{EmployeeID: emp.ID, Date: "2025-03-10", CheckInAt: &at, Status: model.StatusPresent}
	if err := repo.Create(ctx, second); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second Create() error = %v, want ErrDuplicate", err)
	}
}

func TestCloseOpenIsCompareAndSet(t *testing.T) {
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP0001")
	repo := NewAttendanceRepository(db)
	ctx := context.Background()
	in := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

	day := &model.AttendanceDay{EmployeeID: emp.ID, Date: "2025-03-10", CheckInAt: &in, Status: model.StatusPresent}
	if err := repo.Create(ctx, day); err != nil {
		t.Fatal(err)
	}

	closed, err := repo.CloseOpen(ctx, day.ID, in.Add(9*time.Hour), decimal.RequireFromString("9.00"), decimal.RequireFromString("1.00"))
	if err != nil || !closed {
		t.Fatalf("CloseOpen() = %v, %v; want true", closed, err)
	}
	closed, err = repo.CloseOpen(ctx, day.ID, in.Add(10*time.Hour), decimal.RequireFromString("10.00"), decimal.RequireFromString("2.00"))
	if err != nil || closed {
		t.Fatalf("second CloseOpen() = %v, %v; want false", closed, err)
	}

	stored, err := repo.GetByEmployeeAndDate(ctx, emp.ID, "2025-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if !stored.CheckOutAt.Equal(in.Add(9*time.Hour)) || stored.HoursWorked.Decimal.StringFixed(2) != "9.00" {
		t.Fatalf("stored day = %+v, want the first check-out", stored)
	}
}

func TestAttendanceListMonthFilter(t *testing.T) {
	db := openTestDB(t)
	emp := seedEmployee(t, db, "EMP0001")
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	for _, date := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		at, _ := time.Parse(model.DateLayout, date)
		if err := repo.Create(ctx, &model.AttendanceDay{EmployeeID: emp.ID, Date: date, CheckInAt: &at, Status: model.StatusPresent}); err != nil {
			t.Fatal(err)
		}
	}

	days, err := repo.List(ctx, AttendanceFilter{EmployeeID: &emp.ID, Year: 2025, Month: 3})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(days) != 2 || days[0].Date != "2025-03-31" || days[1].Date != "2025-03-01" {
		t.Fatalf("List() dates = %v, want March newest first", days)
	}
	if days[0].Employee.EmployeeCode != "EMP0001" {
		t.Fatalf("Employee not preloaded: %+v", days[0].Employee)
	}
}

func TestGeofenceListActiveOrdered(t *testing.T) {
	db := openTestDB(t)
	repo := NewGeofenceRepository(db)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		if err := repo.Create(ctx, &model.GeofenceZone{Name: name, Type: model.ZoneOffice, Radius: 50, IsActive: true}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.SetActive(ctx, 2, false); err != nil {
		t.Fatal(err)
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 2 || active[0].Name != "A" || active[1].Name != "C" {
		t.Fatalf("ListActive() = %+v, want A then C", active)
	}
	if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByID(99) error = %v, want ErrNotFound", err)
	}
}

func TestEmployeeFirstOrCreateByCode(t *testing.T) {
	db := openTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	first := &model.Employee{EmployeeCode: "ADM0001", Name: "Admin", Role: model.RoleAdmin, IsActive: true}
	if err := repo.FirstOrCreate(ctx, first); err != nil {
		t.Fatal(err)
	}
	again := &model.Employee{EmployeeCode: "ADM0001", Name: "Other"}
	if err := repo.FirstOrCreate(ctx, again); err != nil {
		t.Fatal(err)
	}
	if again.ID != first.ID || again.Name != "Admin" {
		t.Fatalf("FirstOrCreate() = %+v, want existing admin", again)
	}
}

func TestEmployeeInactiveRoundTrips(t *testing.T) {
	db := openTestDB(t)
	repo := NewEmployeeRepository(db)
	ctx := context.Background()

	emp := &model.Employee{EmployeeCode: "EMP0009", Name: "Left", IsActive: false}
	if err := repo.Create(ctx, emp); err != nil {
		t.Fatal(err)
	}
	stored, err := repo.FindByCode(ctx, "EMP0009")
	if err != nil {
		t.Fatalf("FindByCode() error = %v", err)
	}
	if stored.IsActive {
		t.Fatal("stored IsActive = true, want false")
	}
}
