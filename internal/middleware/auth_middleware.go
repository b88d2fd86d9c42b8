package middleware

import (
	"strings"

	"tracewing-backend/internal/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	LocalUserID       = "user_id"
	LocalRole         = "role"
	LocalEmployeeCode = "employee_code"
)

// Auth validates the bearer token and stores the caller's identity in Locals.
func Auth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Take the token from the Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return unauthenticated(c)
		}

		// 2. Parse and validate
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secret, nil
		}, jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			return unauthenticated(c)
		}

		// 3. Keep the claims for the handlers
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return unauthenticated(c)
		}
		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			return unauthenticated(c)
		}
		role, _ := claims["role"].(string)
		code, _ := claims["employee_code"].(string)

		c.Locals(LocalUserID, uint(userID))
		c.Locals(LocalRole, role)
		c.Locals(LocalEmployeeCode, code)

		return c.Next()
	}
}

// CurrentUser returns the identity stored by Auth.
func CurrentUser(c *fiber.Ctx) (uint, string, bool) {
	id, ok := c.Locals(LocalUserID).(uint)
	if !ok {
		return 0, "", false
	}
	role, _ := c.Locals(LocalRole).(string)
	return id, role, true
}

func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "authentication required",
		"kind":  apperror.KindUnauthenticated,
	})
}
