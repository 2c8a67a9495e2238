package handlers

import (
	"soldown/models"

	"github.com/gofiber/fiber/v2"
)

// Health handles GET /api/health
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(models.HealthResponse{
		Status:  "OK",
		Message: "SOLDOWN API is running",
	})
}
