package handler

import (
	"context"
	"log/slog"
	"time"

	"tracewing-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewHealthHandler(db *gorm.DB, log *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.log.Warn("health check failed", "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database connection failed",
			"kind":   apperror.KindUnavailable,
		})
	}

	return c.JSON(fiber.Map{"status": "healthy"})
}
