package handler

import (
	"log/slog"
	"strconv"

	"tracewing-backend/internal/geo"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type GeofenceHandler struct {
	usecase *usecase.GeofenceUsecase
	log     *slog.Logger
}

func NewGeofenceHandler(uc *usecase.GeofenceUsecase, log *slog.Logger) *GeofenceHandler {
	return &GeofenceHandler{usecase: uc, log: log}
}

type GeofenceRequest struct {
	Name         *string         `json:"name"`
	LocationType *model.ZoneType `json:"location_type"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Radius       *int            `json:"radius"`
	Address      *string         `json:"address"`
	IsActive     *bool           `json:"is_active"`
}

func (r GeofenceRequest) input() usecase.GeofenceInput {
	return usecase.GeofenceInput{
		Name:      r.Name,
		Type:      r.LocationType,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Radius:    r.Radius,
		Address:   r.Address,
		IsActive:  r.IsActive,
	}
}

func (h *GeofenceHandler) List(c *fiber.Ctx) error {
	zones, err := h.usecase.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}

	data := make([]geofenceResponse, 0, len(zones))
	for i := range zones {
		data = append(data, newGeofenceResponse(&zones[i]))
	}
	return c.JSON(fiber.Map{"geofences": data, "count": len(data)})
}

func (h *GeofenceHandler) Create(c *fiber.Ctx) error {
	var req GeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	zone, err := h.usecase.Create(c.UserContext(), viewer(c), req.input())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "geofence created",
		"geofence": newGeofenceResponse(zone),
	})
}

func (h *GeofenceHandler) Update(c *fiber.Ctx) error {
	id, ok := zoneID(c)
	if !ok {
		return badRequest(c, "geofence id must be a positive integer")
	}
	var req GeofenceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	zone, err := h.usecase.Update(c.UserContext(), viewer(c), id, req.input())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":  "geofence updated",
		"geofence": newGeofenceResponse(zone),
	})
}

func (h *GeofenceHandler) Deactivate(c *fiber.Ctx) error {
	id, ok := zoneID(c)
	if !ok {
		return badRequest(c, "geofence id must be a positive integer")
	}

	zone, err := h.usecase.Deactivate(c.UserContext(), viewer(c), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"message":  "geofence deactivated",
		"geofence": newGeofenceResponse(zone),
	})
}

type CheckLocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type containingZone struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	LocationType model.ZoneType `json:"location_type"`
	Distance     float64        `json:"distance"`
}

type nearestZone struct {
	ID             uint    `json:"id"`
	Name           string  `json:"name"`
	DistanceMeters float64 `json:"distance_meters"`
}

func (h *GeofenceHandler) CheckLocation(c *fiber.Ctx) error {
	var req CheckLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Latitude == nil || req.Longitude == nil {
		return writeError(c, h.log, geo.ErrMissingCoordinates)
	}

	check, err := h.usecase.CheckLocation(c.UserContext(), geo.Point{Latitude: *req.Latitude, Longitude: *req.Longitude})
	if err != nil {
		return writeError(c, h.log, err)
	}

	within := make([]containingZone, 0, len(check.Containing))
	for _, z := range check.Containing {
		within = append(within, containingZone{ID: z.ID, Name: z.Name, LocationType: z.Type})
	}

	var nearest *nearestZone
	if res := check.Resolution; res.Zone != nil && res.DistanceMeters != nil {
		nearest = &nearestZone{ID: res.Zone.ID, Name: res.Zone.Name, DistanceMeters: *res.DistanceMeters}
	}

	return c.JSON(fiber.Map{
		"location":           check.Point,
		"within_geofences":   within,
		"is_within_geofence": check.Resolution.WithinGeofence,
		"resolved_geofence":  nearest,
	})
}

func zoneID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
