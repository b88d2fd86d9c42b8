package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// StandardWorkdayHours is the threshold beyond which worked hours count as overtime.
const StandardWorkdayHours = 8

var (
	secondsPerHour = decimal.NewFromInt(3600)
	workdayHours   = decimal.NewFromInt(StandardWorkdayHours)
)

// EmployeeDirectory resolves employee identities. It is satisfied by
// repository.EmployeeRepository.
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id uint) (*model.Employee, error)
}

// AttendanceLedger owns every AttendanceDay mutation. Per employee and date the
// day moves NotCheckedIn -> CheckedIn -> CheckedOut and never goes back.
type AttendanceLedger struct {
	repo      repository.AttendanceRepository
	employees EmployeeDirectory
	loc       *time.Location
}

// NewAttendanceLedger builds a ledger whose calendar dates are taken in loc.
func NewAttendanceLedger(repo repository.AttendanceRepository, employees EmployeeDirectory, loc *time.Location) *AttendanceLedger {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceLedger{repo: repo, employees: employees, loc: loc}
}

// DateOf returns the attendance date a timestamp belongs to.
func (l *AttendanceLedger) DateOf(t time.Time) string {
	return t.In(l.loc).Format(model.DateLayout)
}

// CheckIn opens the day of at for the employee. The insert itself is the
// uniqueness check: whichever request loses the race gets AlreadyCheckedIn.
func (l *AttendanceLedger) CheckIn(ctx context.Context, employeeID uint, at time.Time, notes string) (*model.AttendanceDay, error) {
	if _, err := LookupEmployee(ctx, l.employees, employeeID); err != nil {
		return nil, err
	}

	at = normalize(at)
	day := &model.AttendanceDay{
		EmployeeID:    employeeID,
		Date:          l.DateOf(at),
		CheckInAt:     &at,
		Status:        model.StatusPresent,
		OvertimeHours: decimal.Zero,
		Notes:         notes,
	}

	if err := l.repo.Create(ctx, day); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.Wrap(apperror.KindAlreadyCheckedIn, "already checked in on "+day.Date, err)
		}
		return nil, fmt.Errorf("create attendance day: %w", err)
	}
	return day, nil
}

// CheckOut closes the open day of at and fills in hours worked and overtime.
func (l *AttendanceLedger) CheckOut(ctx context.Context, employeeID uint, at time.Time) (*model.AttendanceDay, error) {
	if _, err := LookupEmployee(ctx, l.employees, employeeID); err != nil {
		return nil, err
	}

	at = normalize(at)
	date := l.DateOf(at)

	day, err := l.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindNoOpenCheckIn, "no check-in found for "+date, nil)
		}
		return nil, fmt.Errorf("load attendance day: %w", err)
	}
	if !day.IsOpen() {
		return nil, apperror.Wrap(apperror.KindNoOpenCheckIn, "no open check-in for "+date, nil)
	}
	if at.Before(*day.CheckInAt) {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "check-out time is before check-in time", nil)
	}

	hours, overtime := WorkedHours(*day.CheckInAt, at)

	closed, err := l.repo.CloseOpen(ctx, day.ID, at, hours, overtime)
	if err != nil {
		return nil, fmt.Errorf("close attendance day: %w", err)
	}
	if !closed {
		return nil, apperror.Wrap(apperror.KindNoOpenCheckIn, "attendance for "+date+" was already checked out", nil)
	}

	day.CheckOutAt = &at
	day.HoursWorked = decimal.NewNullDecimal(hours)
	day.OvertimeHours = overtime
	return day, nil
}

// WorkedHours returns (out-in) in hours rounded half up to 2 places, and the
// part of it above StandardWorkdayHours.
func WorkedHours(in, out time.Time) (hours, overtime decimal.Decimal) {
	seconds := decimal.New(out.Sub(in).Nanoseconds(), -9)
	hours = seconds.DivRound(secondsPerHour, 2)
	overtime = decimal.Max(decimal.Zero, hours.Sub(workdayHours))
	return hours, overtime
}

// LookupEmployee maps a missing directory entry to EmployeeNotFound.
func LookupEmployee(ctx context.Context, employees EmployeeDirectory, id uint) (*model.Employee, error) {
	employee, err := employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.Wrap(apperror.KindEmployeeNotFound, fmt.Sprintf("employee %d not found", id), nil)
		}
		return nil, fmt.Errorf("find employee %d: %w", id, err)
	}
	return employee, nil
}

// normalize keeps timestamps in UTC at second resolution so the stored values
// reproduce hours_worked exactly on every dialect.
func normalize(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}
