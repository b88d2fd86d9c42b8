package handler

import (
	"log/slog"
	"time"

	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const defaultSampleLimit = 100

type AttendanceHandler struct {
	service *usecase.AttendanceService
	log     *slog.Logger
	now     func() time.Time
}

func NewAttendanceHandler(service *usecase.AttendanceService, log *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{service: service, log: log, now: time.Now}
}

type CheckInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Notes     string   `json:"notes"`
}

func (h *AttendanceHandler) CheckIn(c *fiber.Ctx) error {
	v := viewer(c)

	var req CheckInRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	point, err := coordinates(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(c, h.log, err)
	}

	event, err := h.service.CheckIn(c.UserContext(), usecase.CheckInInput{
		EmployeeID: v.EmployeeID,
		Location:   point,
		Notes:      req.Notes,
		At:         h.now(),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "check-in recorded",
		"attendance_id": event.Day.ID,
		"check_in_time": event.Day.CheckInAt,
		"date":          event.Day.Date,
		"notes":         event.Day.Notes,
		"location":      newLocationOutcome(event.Sample),
	})
}

type CheckOutRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *AttendanceHandler) CheckOut(c *fiber.Ctx) error {
	v := viewer(c)

	var req CheckOutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	point, err := coordinates(req.Latitude, req.Longitude)
	if err != nil {
		return writeError(c, h.log, err)
	}

	event, err := h.service.CheckOut(c.UserContext(), usecase.CheckOutInput{
		EmployeeID: v.EmployeeID,
		Location:   point,
		At:         h.now(),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	day := newAttendanceResponse(event.Day)
	return c.JSON(fiber.Map{
		"message":        "check-out recorded",
		"attendance_id":  day.ID,
		"check_out_time": day.CheckOutTime,
		"date":           day.Date,
		"hours_worked":   day.HoursWorked,
		"overtime_hours": day.OvertimeHours,
		"location":       newLocationOutcome(event.Sample),
	})
}

func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	employeeID, ok := optionalUint(c, "employee_id")
	if !ok {
		return badRequest(c, "employee_id must be a positive integer")
	}

	days, err := h.service.List(c.UserContext(), viewer(c), employeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}

	records := make([]attendanceResponse, 0, len(days))
	for i := range days {
		records = append(records, newAttendanceResponse(&days[i]))
	}
	return c.JSON(fiber.Map{
		"attendance_records": records,
		"count":              len(records),
	})
}

func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	status, err := h.service.Today(c.UserContext(), viewer(c).EmployeeID, h.now())
	if err != nil {
		return writeError(c, h.log, err)
	}

	resp := fiber.Map{"date": status.Date, "state": status.State, "attendance": nil}
	if status.Day != nil {
		resp["attendance"] = newAttendanceResponse(status.Day)
	}
	return c.JSON(resp)
}

func (h *AttendanceHandler) Summary(c *fiber.Ctx) error {
	year, month := h.service.MonthOf(h.now())
	year = c.QueryInt("year", year)
	month = c.QueryInt("month", month)

	summary, err := h.service.Summary(c.UserContext(), viewer(c).EmployeeID, year, month)
	if err != nil {
		return writeError(c, h.log, err)
	}

	detail := make([]attendanceResponse, 0, len(summary.Detail))
	for i := range summary.Detail {
		detail = append(detail, newAttendanceResponse(&summary.Detail[i]))
	}
	return c.JSON(fiber.Map{
		"year":                 summary.Year,
		"month":                summary.Month,
		"days":                 summary.Days,
		"by_status":            summary.ByStatus,
		"total_hours":          summary.TotalHours.InexactFloat64(),
		"total_overtime_hours": summary.TotalOvertime.InexactFloat64(),
		"detail":               detail,
	})
}

type LocationRequest struct {
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	RecordedAt *time.Time `json:"recorded_at"`
}

// RecordLocation stores an ambient location ping for the caller.
func (h *AttendanceHandler) RecordLocation(c *fiber.Ctx) error {
	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return writeError(c, h.log, geo.ErrMissingCoordinates)
	}

	at := h.now()
	if req.RecordedAt != nil {
		at = *req.RecordedAt
	}

	sample, err := h.service.RecordLocation(c.UserContext(), viewer(c).EmployeeID,
		geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude}, at)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": newSampleResponse(sample)})
}

func (h *AttendanceHandler) ListLocations(c *fiber.Ctx) error {
	employeeID, ok := optionalUint(c, "employee_id")
	if !ok {
		return badRequest(c, "employee_id must be a positive integer")
	}
	limit := c.QueryInt("limit", defaultSampleLimit)
	if limit <= 0 || limit > 1000 {
		limit = defaultSampleLimit
	}

	samples, err := h.service.Samples(c.UserContext(), viewer(c), employeeID, limit)
	if err != nil {
		return writeError(c, h.log, err)
	}

	data := make([]sampleResponse, 0, len(samples))
	for i := range samples {
		data = append(data, newSampleResponse(&samples[i]))
	}
	return c.JSON(fiber.Map{"data": data, "count": len(data)})
}
