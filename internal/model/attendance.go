package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusHalfDay = "half_day"
	StatusOnLeave = "on_leave"
)

// DateLayout is the format of AttendanceDay.Date.
const DateLayout = "2006-01-02"

// AttendanceDay is one check-in/check-out cycle of an employee on a calendar date.
// (employee_id, date) is unique; the index is the only guard against double check-in.
type AttendanceDay struct {
	gorm.Model
	EmployeeID uint   `json:"employee_id" gorm:"not null;uniqueIndex:idx_attendance_employee_date"`
	Date       string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_attendance_employee_date"`

	CheckInAt     *time.Time          `json:"check_in_time"`
	CheckOutAt    *time.Time          `json:"check_out_time"`
	Status        string              `json:"status" gorm:"size:20;default:present"`
	HoursWorked   decimal.NullDecimal `json:"hours_worked" gorm:"type:decimal(5,2)"`
	OvertimeHours decimal.Decimal     `json:"overtime_hours" gorm:"type:decimal(5,2);not null;default:0"`
	Notes         string              `json:"notes"`

	Employee Employee `json:"-" gorm:"foreignKey:EmployeeID"`
}

// IsOpen reports whether the day has a check-in waiting for its check-out.
func (a *AttendanceDay) IsOpen() bool {
	return a.CheckInAt != nil && a.CheckOutAt == nil
}
