package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/service"
	"github.com/brickengine/publisher/common/logger"
)

// PublishHandler handles game submission uploads
type PublishHandler struct {
	submissions *service.SubmissionService
	log         *logger.Logger
}

// NewPublishHandler creates a new publish handler
func NewPublishHandler(submissions *service.SubmissionService, log *logger.Logger) *PublishHandler {
	return &PublishHandler{
		submissions: submissions,
		log:         log,
	}
}

// Publish accepts a multipart game submission
// POST /api/v1/games/publish
func (h *PublishHandler) Publish(c echo.Context) error {
	in := service.PublishInput{
		GameID:         c.FormValue("game_id"),
		GameName:       c.FormValue("game_name"),
		Version:        c.FormValue("version"),
		DeveloperEmail: c.FormValue("developer_email"),
	}

	if file, err := c.FormFile("bundle"); err == nil {
		src, err := file.Open()
		if err != nil {
			h.log.Error("failed to open uploaded bundle", "error", err)
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "could not read uploaded bundle"})
		}
		defer src.Close()

		in.BundleName = file.Filename
		in.Bundle = src
	}

	req, err := h.submissions.Publish(c.Request().Context(), in)
	if err != nil {
		h.log.Warn("publish failed", "game_id", in.GameID, "version", in.Version, "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Successfully uploaded %s v%s for review.", req.GameName, req.Version),
		"request": req,
	})
}
