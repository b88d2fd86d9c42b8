package model

import "gorm.io/gorm"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type Employee struct {
	gorm.Model
	EmployeeCode string `json:"employee_code" gorm:"column:employee_code;size:32;unique;not null"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"-"`
	Position     string `json:"position"`
	Role         string `json:"role" gorm:"size:20;default:employee"`
	IsActive     bool   `json:"is_active" gorm:"not null"`

	AttendanceDays []AttendanceDay `json:"-"`
}

func (e *Employee) IsAdmin() bool {
	return e.Role == RoleAdmin
}
