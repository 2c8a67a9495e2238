package handlers

import (
	"bufio"
	"fmt"
	"log"
	"soldown/models"
	"soldown/services"
	"soldown/utils"

	"github.com/gofiber/fiber/v2"
)

// Download handles POST /api/download.
// Resolution failures surface as JSON errors; once streaming has begun the
// only remaining failure mode is terminating the stream, which the client
// sees as a truncated file.
func (h *Handler) Download(c *fiber.Ctx) error {
	var req models.DownloadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if req.URL == "" {
		return utils.BadRequest(c, "URL is required")
	}

	reqID := h.newID()
	log.Printf("[Download %s] %s format=%s itag=%s audio=%t\n",
		reqID, h.backend.Name(), req.Format, req.Itag, req.IsAudioOnly())

	dl, err := h.backend.Resolve(c.Context(), &req)
	if err != nil {
		log.Printf("[Download %s] Resolve error: %v\n", reqID, err)
		return utils.InternalError(c, err.Error())
	}

	c.Set(fiber.HeaderContentType, dl.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, dl.Filename))

	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer func() {
			if err := dl.Close(); err != nil {
				log.Printf("[Download %s] Subprocess exit: %v (%s)\n", reqID, err, dl.Stderr())
			}
		}()

		if err := services.CopyStream(w, dl.Body); err != nil {
			log.Printf("[Download %s] Stream aborted: %v\n", reqID, err)
			return
		}
		log.Printf("[Download %s] Complete: %s\n", reqID, dl.Filename)
	})

	return nil
}
