package handler

import (
	"log/slog"
	"strings"

	"tracewing-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *usecase.AuthUsecase
	log  *slog.Logger
}

func NewAuthHandler(auth *usecase.AuthUsecase, log *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

type LoginRequest struct {
	EmployeeCode string `json:"employee_code"`
	Password     string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.EmployeeCode = strings.TrimSpace(req.EmployeeCode)
	if req.EmployeeCode == "" || req.Password == "" {
		return badRequest(c, "employee_code and password are required")
	}

	token, employee, err := h.auth.Login(c.UserContext(), req.EmployeeCode, req.Password)
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(fiber.Map{
		"message": "login successful",
		"token":   token,
		"data": fiber.Map{
			"employee_code": employee.EmployeeCode,
			"name":          employee.Name,
			"role":          employee.Role,
			"position":      employee.Position,
		},
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	employee, err := h.auth.Profile(c.UserContext(), viewer(c).EmployeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(fiber.Map{"data": employee})
}
