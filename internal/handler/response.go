package handler

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"tracewing-backend/internal/apperror"
	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/middleware"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// writeError renders err as {"error", "kind"} with the status of its kind.
// Errors without a kind are logged and reported as a generic 500.
func writeError(c *fiber.Ctx, log *slog.Logger, err error) error {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		log.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
			"kind":  apperror.KindInternal,
		})
	}

	status := apperror.HTTPStatus(appErr.Kind)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed", "method", c.Method(), "path", c.Path(), "kind", appErr.Kind, "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": appErr.Message,
		"kind":  appErr.Kind,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": message,
		"kind":  apperror.KindInvalidInput,
	})
}

func viewer(c *fiber.Ctx) usecase.Viewer {
	id, role, _ := middleware.CurrentUser(c)
	return usecase.Viewer{EmployeeID: id, Role: role}
}

// optionalUint reads a positive integer query parameter; ok is false when it is malformed.
func optionalUint(c *fiber.Ctx, key string) (*uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || n == 0 {
		return nil, false
	}
	v := uint(n)
	return &v, true
}

// coordinates turns an optional latitude/longitude pair into a point. Sending
// only one of the two is an error.
func coordinates(lat, lng *float64) (*geo.Point, error) {
	if lat == nil && lng == nil {
		return nil, nil
	}
	if lat == nil || lng == nil {
		return nil, apperror.Wrap(apperror.KindInvalidCoordinates, "latitude and longitude must be sent together", nil)
	}
	return &geo.Point{Latitude: *lat, Longitude: *lng}, nil
}

type centerResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geofenceResponse struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	LocationType model.ZoneType `json:"location_type"`
	Radius       int            `json:"radius"`
	Center       centerResponse `json:"center"`
	Address      string         `json:"address"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
}

func newGeofenceResponse(z *model.GeofenceZone) geofenceResponse {
	return geofenceResponse{
		ID:           z.ID,
		Name:         z.Name,
		LocationType: z.Type,
		Radius:       z.Radius,
		Center:       centerResponse{Latitude: z.Latitude, Longitude: z.Longitude},
		Address:      z.Address,
		IsActive:     z.IsActive,
		CreatedAt:    z.CreatedAt,
	}
}

type attendanceResponse struct {
	ID            uint       `json:"id"`
	EmployeeName  string     `json:"employee_name"`
	EmployeeID    string     `json:"employee_id"`
	Date          string     `json:"date"`
	CheckInTime   *time.Time `json:"check_in_time"`
	CheckOutTime  *time.Time `json:"check_out_time"`
	Status        string     `json:"status"`
	HoursWorked   *float64   `json:"hours_worked"`
	OvertimeHours float64    `json:"overtime_hours"`
	Notes         string     `json:"notes"`
}

func newAttendanceResponse(d *model.AttendanceDay) attendanceResponse {
	resp := attendanceResponse{
		ID:            d.ID,
		EmployeeName:  d.Employee.Name,
		EmployeeID:    d.Employee.EmployeeCode,
		Date:          d.Date,
		CheckInTime:   d.CheckInAt,
		CheckOutTime:  d.CheckOutAt,
		Status:        d.Status,
		OvertimeHours: d.OvertimeHours.InexactFloat64(),
		Notes:         d.Notes,
	}
	if d.HoursWorked.Valid {
		hours := d.HoursWorked.Decimal.InexactFloat64()
		resp.HoursWorked = &hours
	}
	return resp
}

type locationOutcome struct {
	SampleID             string   `json:"sample_id"`
	IsWithinGeofence     bool     `json:"is_within_geofence"`
	GeofenceLocationID   *uint    `json:"geofence_location_id"`
	GeofenceLocationName string   `json:"geofence_location_name,omitempty"`
	DistanceMeters       *float64 `json:"distance_from_geofence"`
}

func newLocationOutcome(s *model.LocationSample) *locationOutcome {
	if s == nil {
		return nil
	}
	out := &locationOutcome{
		SampleID:           s.ID.String(),
		IsWithinGeofence:   s.IsWithinGeofence,
		GeofenceLocationID: s.GeofenceZoneID,
	}
	if s.GeofenceZone != nil {
		out.GeofenceLocationName = s.GeofenceZone.Name
	}
	if s.DistanceMeters.Valid {
		d := s.DistanceMeters.Decimal.InexactFloat64()
		out.DistanceMeters = &d
	}
	return out
}

type sampleResponse struct {
	ID                 string               `json:"id"`
	EmployeeID         uint                 `json:"employee_id"`
	Latitude           float64              `json:"latitude"`
	Longitude          float64              `json:"longitude"`
	Action             model.LocationAction `json:"action"`
	Timestamp          time.Time            `json:"timestamp"`
	IsWithinGeofence   bool                 `json:"is_within_geofence"`
	GeofenceLocationID *uint                `json:"geofence_location_id"`
	DistanceMeters     *float64             `json:"distance_from_geofence"`
}

func newSampleResponse(s *model.LocationSample) sampleResponse {
	outcome := newLocationOutcome(s)
	return sampleResponse{
		ID:                 s.ID.String(),
		EmployeeID:         s.EmployeeID,
		Latitude:           s.Latitude,
		Longitude:          s.Longitude,
		Action:             s.Action,
		Timestamp:          s.RecordedAt,
		IsWithinGeofence:   outcome.IsWithinGeofence,
		GeofenceLocationID: outcome.GeofenceLocationID,
		DistanceMeters:     outcome.DistanceMeters,
	}
}
