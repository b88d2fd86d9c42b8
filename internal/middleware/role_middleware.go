package middleware

import (
	"tracewing-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
)

// Role lets the request through only when Auth stored one of allowedRoles.
func Role(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userRole, ok := c.Locals(LocalRole).(string)
		if ok {
			for _, role := range allowedRoles {
				if role == userRole {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "access denied for role " + userRole,
			"kind":  apperror.KindForbidden,
		})
	}
}
