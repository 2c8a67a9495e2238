package utils

import (
	"soldown/models"

	"github.com/gofiber/fiber/v2"
)

// JSONError writes the flat error object the client expects
func JSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// BadRequest returns 400 error
func BadRequest(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusBadRequest, message)
}

// InternalError returns 500 error
func InternalError(c *fiber.Ctx, message string) error {
	return JSONError(c, fiber.StatusInternalServerError, message)
}
