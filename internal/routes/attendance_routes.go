package routes

import (
	"tracewing-backend/internal/handler"
	"tracewing-backend/internal/middleware"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAttendanceRoutes(app *fiber.App, d Deps, service *usecase.AttendanceService) {
	hdl := handler.NewAttendanceHandler(service, d.Log)
	auth := middleware.Auth([]byte(d.Config.JWTSecret))

	attendance := app.Group("/api/attendance", auth)
	attendance.Get("/", hdl.List)
	attendance.Post("/check-in", hdl.CheckIn)
	attendance.Post("/check-out", hdl.CheckOut)
	attendance.Get("/today", hdl.Today)
	attendance.Get("/summary", hdl.Summary)

	locations := app.Group("/api/locations", auth)
	locations.Post("/", hdl.RecordLocation)
	locations.Get("/", hdl.ListLocations)
}
