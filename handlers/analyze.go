package handlers

import (
	"log"
	"soldown/models"
	"soldown/services"
	"soldown/utils"

	"github.com/gofiber/fiber/v2"
)

// Analyze handles POST /api/analyze
func (h *Handler) Analyze(c *fiber.Ctx) error {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.URL == "" {
		return utils.BadRequest(c, "URL is required")
	}

	if !services.IsSupportedURL(req.URL) {
		return utils.BadRequest(c, "Invalid or unsupported URL")
	}

	info, err := h.backend.Analyze(c.Context(), req.URL)
	if err != nil {
		log.Printf("[Analyze] %s: %v\n", h.backend.Name(), err)
		return utils.InternalError(c, err.Error())
	}

	return c.JSON(models.AnalyzeResponse{
		Success:  true,
		Title:    info.Title,
		Duration: info.Duration,
		Formats:  services.WithAudioOptions(info.Formats),
		Platform: info.Platform,
	})
}
