package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"

	"github.com/shopspring/decimal"
)

// CheckOutNotifier is told about every completed check-out. Delivery is best
// effort: a failure is logged and never undoes the check-out.
type CheckOutNotifier interface {
	NotifyCheckOut(ctx context.Context, employee *model.Employee, day *model.AttendanceDay) error
}

// Viewer is the authenticated caller of a read operation.
type Viewer struct {
	EmployeeID uint
	Role       string
}

func (v Viewer) IsAdmin() bool { return v.Role == model.RoleAdmin }

type CheckInInput struct {
	EmployeeID uint
	Location   *geo.Point
	Notes      string
	At         time.Time
}

type CheckOutInput struct {
	EmployeeID uint
	Location   *geo.Point
	At         time.Time
}

// AttendanceEvent is the result of a check-in or check-out. Sample is nil when
// the request carried no coordinates.
type AttendanceEvent struct {
	Day    *model.AttendanceDay
	Sample *model.LocationSample
}

const (
	StateNotCheckedIn = "not_checked_in"
	StateCheckedIn    = "checked_in"
	StateCheckedOut   = "checked_out"
)

type TodayStatus struct {
	Date  string
	State string
	Day   *model.AttendanceDay
}

type MonthlySummary struct {
	Year          int
	Month         int
	Days          int
	ByStatus      map[string]int
	TotalHours    decimal.Decimal
	TotalOvertime decimal.Decimal
	Detail        []model.AttendanceDay
}

// AttendanceService routes location-tagged attendance events through the
// resolver, the location log and the ledger, in that order.
type AttendanceService struct {
	ledger    *AttendanceLedger
	locations *LocationLogger
	employees EmployeeDirectory
	repo      repository.AttendanceRepository
	samples   repository.LocationSampleRepository
	notifier  CheckOutNotifier
	log       *slog.Logger
}

func NewAttendanceService(
	ledger *AttendanceLedger,
	locations *LocationLogger,
	employees EmployeeDirectory,
	repo repository.AttendanceRepository,
	samples repository.LocationSampleRepository,
	notifier CheckOutNotifier,
	log *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		ledger:    ledger,
		locations: locations,
		employees: employees,
		repo:      repo,
		samples:   samples,
		notifier:  notifier,
		log:       log,
	}
}

func (s *AttendanceService) CheckIn(ctx context.Context, in CheckInInput) (*AttendanceEvent, error) {
	sample, err := s.logEvent(ctx, in.EmployeeID, in.Location, model.ActionCheckIn, in.At)
	if err != nil {
		return nil, err
	}

	day, err := s.ledger.CheckIn(ctx, in.EmployeeID, in.At, in.Notes)
	if err != nil {
		return nil, err
	}

	s.log.Info("check-in recorded", "employee_id", in.EmployeeID, "attendance_id", day.ID, "date", day.Date)
	return &AttendanceEvent{Day: day, Sample: sample}, nil
}

func (s *AttendanceService) CheckOut(ctx context.Context, in CheckOutInput) (*AttendanceEvent, error) {
	sample, err := s.logEvent(ctx, in.EmployeeID, in.Location, model.ActionCheckOut, in.At)
	if err != nil {
		return nil, err
	}

	day, err := s.ledger.CheckOut(ctx, in.EmployeeID, in.At)
	if err != nil {
		return nil, err
	}

	s.log.Info("check-out recorded",
		"employee_id", in.EmployeeID,
		"attendance_id", day.ID,
		"hours_worked", day.HoursWorked.Decimal.StringFixed(2),
		"overtime_hours", day.OvertimeHours.StringFixed(2),
	)
	s.notify(ctx, in.EmployeeID, day)

	return &AttendanceEvent{Day: day, Sample: sample}, nil
}

// RecordLocation logs an ambient location ping.
func (s *AttendanceService) RecordLocation(ctx context.Context, employeeID uint, p geo.Point, at time.Time) (*model.LocationSample, error) {
	return s.logEvent(ctx, employeeID, &p, model.ActionLocationUpdate, at)
}

// logEvent checks the employee and coordinates first so that a rejected
// request leaves no sample behind; a domain rejection by the ledger afterwards
// still keeps the sample, since the event did happen.
func (s *AttendanceService) logEvent(ctx context.Context, employeeID uint, p *geo.Point, action model.LocationAction, at time.Time) (*model.LocationSample, error) {
	if p != nil {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if _, err := LookupEmployee(ctx, s.employees, employeeID); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return s.locations.Record(ctx, employeeID, *p, action, at)
}

func (s *AttendanceService) notify(ctx context.Context, employeeID uint, day *model.AttendanceDay) {
	if s.notifier == nil {
		return
	}
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		s.log.Warn("check-out notification skipped", "employee_id", employeeID, "error", err)
		return
	}
	if err := s.notifier.NotifyCheckOut(ctx, employee, day); err != nil {
		s.log.Warn("check-out notification failed", "employee_id", employeeID, "error", err)
	}
}

// List returns attendance days visible to the viewer. Administrators see every
// employee, optionally narrowed to one; everyone else only sees their own.
func (s *AttendanceService) List(ctx context.Context, viewer Viewer, employeeID *uint) ([]model.AttendanceDay, error) {
	filter := repository.AttendanceFilter{EmployeeID: employeeID}
	if !viewer.IsAdmin() {
		filter.EmployeeID = &viewer.EmployeeID
	}
	days, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return days, nil
}

func (s *AttendanceService) Today(ctx context.Context, employeeID uint, now time.Time) (*TodayStatus, error) {
	date := s.ledger.DateOf(now)
	status := &TodayStatus{Date: date, State: StateNotCheckedIn}

	day, err := s.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return status, nil
		}
		return nil, fmt.Errorf("load today's attendance: %w", err)
	}

	status.Day = day
	switch {
	case day.CheckOutAt != nil:
		status.State = StateCheckedOut
	case day.CheckInAt != nil:
		status.State = StateCheckedIn
	}
	return status, nil
}

// MonthOf returns the attendance year and month now falls in.
func (s *AttendanceService) MonthOf(now time.Time) (int, int) {
	t, _ := time.Parse(model.DateLayout, s.ledger.DateOf(now))
	return t.Year(), int(t.Month())
}

func (s *AttendanceService) Summary(ctx context.Context, employeeID uint, year, month int) (*MonthlySummary, error) {
	if year < 1 || month < 1 || month > 12 {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "month must be 1-12 and year must be positive", nil)
	}

	days, err := s.repo.List(ctx, repository.AttendanceFilter{EmployeeID: &employeeID, Year: year, Month: month})
	if err != nil {
		return nil, fmt.Errorf("list attendance for summary: %w", err)
	}

	summary := &MonthlySummary{
		Year:          year,
		Month:         month,
		Days:          len(days),
		ByStatus:      map[string]int{model.StatusPresent: 0, model.StatusAbsent: 0, model.StatusLate: 0, model.StatusHalfDay: 0, model.StatusOnLeave: 0},
		TotalHours:    decimal.Zero,
		TotalOvertime: decimal.Zero,
		Detail:        days,
	}
	for _, d := range days {
		summary.ByStatus[d.Status]++
		if d.HoursWorked.Valid {
			summary.TotalHours = summary.TotalHours.Add(d.HoursWorked.Decimal)
		}
		summary.TotalOvertime = summary.TotalOvertime.Add(d.OvertimeHours)
	}
	return summary, nil
}

// Samples returns the location audit trail visible to the viewer, newest first.
func (s *AttendanceService) Samples(ctx context.Context, viewer Viewer, employeeID *uint, limit int) ([]model.LocationSample, error) {
	if !viewer.IsAdmin() {
		employeeID = &viewer.EmployeeID
	}
	samples, err := s.samples.List(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("list location samples: %w", err)
	}
	return samples, nil
}
