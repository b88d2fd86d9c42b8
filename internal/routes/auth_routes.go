package routes

import (
	"tracewing-backend/internal/handler"
	"tracewing-backend/internal/middleware"
	"tracewing-backend/internal/repository"
	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, d Deps) {
	employeeRepo := repository.NewEmployeeRepository(d.DB)
	authUsecase := usecase.NewAuthUsecase(employeeRepo, []byte(d.Config.JWTSecret), d.Config.JWTTTL())
	hdl := handler.NewAuthHandler(authUsecase, d.Log)

	api := app.Group("/api/auth")

	api.Post("/login", hdl.Login)
	api.Get("/profile", middleware.Auth([]byte(d.Config.JWTSecret)), hdl.Profile)
}
