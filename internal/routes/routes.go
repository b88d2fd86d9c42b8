package routes

import (
	"tracewing-backend/internal/handler"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

// Setup registers every route group on app.
func Setup(app *fiber.App, d Deps, service *usecase.AttendanceService) {
	app.Get("/health", handler.NewHealthHandler(d.DB, d.Log).Check)

	SetupAuthRoutes(app, d)
	SetupAttendanceRoutes(app, d, service)
	SetupGeofenceRoutes(app, d)
}
