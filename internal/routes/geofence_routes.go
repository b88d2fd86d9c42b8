package routes

import (
	"tracewing-backend/internal/handler"
	"tracewing-backend/internal/middleware"
	"tracewing-backend/internal/model"
	"tracewing-backend/internal/repository"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupGeofenceRoutes(app *fiber.App, d Deps) {
	zoneRepo := repository.NewGeofenceRepository(d.DB)
	resolver := usecase.NewGeofenceResolver(usecase.NewGeofenceRegistry(zoneRepo))
	hdl := handler.NewGeofenceHandler(usecase.NewGeofenceUsecase(zoneRepo, resolver, d.Log), d.Log)

	api := app.Group("/api/geofences", middleware.Auth([]byte(d.Config.JWTSecret)))

	api.Get("/", hdl.List)
	api.Post("/check-location", hdl.CheckLocation)

	// Admin only
	admin := middleware.Role(model.RoleAdmin)
	api.Post("/", admin, hdl.Create)
	api.Put("/:id", admin, hdl.Update)
	api.Post("/:id/deactivate", admin, hdl.Deactivate)
}
