package repository

import (
	"context"
	"time"

	"tracewing-backend/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AttendanceFilter struct {
	EmployeeID *uint
	Year       int
	Month      int // 1-12, used together with Year
}

type AttendanceRepository interface {
	// Create inserts a new day. A clash on (employee_id, date) returns ErrDuplicate.
	Create(ctx context.Context, day *model.AttendanceDay) error
	GetByEmployeeAndDate(ctx context.Context, employeeID uint, date string) (*model.AttendanceDay, error)
	// CloseOpen writes the check-out only while check_out_at is still NULL.
	// It returns false when another writer got there first.
	CloseOpen(ctx context.Context, id uint, checkOutAt time.Time, hours, overtime decimal.Decimal) (bool, error)
	List(ctx context.Context, filter AttendanceFilter) ([]model.AttendanceDay, error)
}

type attendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db}
}

func (r *attendanceRepository) Create(ctx context.Context, day *model.AttendanceDay) error {
	return translate(r.db.WithContext(ctx).Omit("Employee").Create(day).Error)
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID uint, date string) (*model.AttendanceDay, error) {
	var day model.AttendanceDay
	err := r.db.WithContext(ctx).Where("employee_id = ? AND date = ?", employeeID, date).First(&day).Error
	if err != nil {
		return nil, translate(err)
	}
	return &day, nil
}

func (r *attendanceRepository) CloseOpen(ctx context.Context, id uint, checkOutAt time.Time, hours, overtime decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.AttendanceDay{}).
		Where("id = ? AND check_in_at IS NOT NULL AND check_out_at IS NULL", id).
		Updates(map[string]interface{}{
			"check_out_at":   checkOutAt,
			"hours_worked":   hours,
			"overtime_hours": overtime,
		})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *attendanceRepository) List(ctx context.Context, filter AttendanceFilter) ([]model.AttendanceDay, error) {
	var days []model.AttendanceDay
	query := r.db.WithContext(ctx).Preload("Employee")

	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Year > 0 && filter.Month > 0 {
		start := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start.Format(model.DateLayout), end.Format(model.DateLayout))
	}

	err := query.Order("date desc").Order("check_in_at desc").Find(&days).Error
	return days, translate(err)
}
