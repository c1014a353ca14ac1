package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/service"
	"github.com/brickengine/publisher/common/logger"
)

// ReviewHandler handles administrator decisions on submission requests
type ReviewHandler struct {
	submissions *service.SubmissionService
	log         *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(submissions *service.SubmissionService, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		submissions: submissions,
		log:         log,
	}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Approve publishes a pending submission into the catalog
// POST /api/v1/requests/:id/approve
func (h *ReviewHandler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request id"})
	}

	game, err := h.submissions.Approve(c.Request().Context(), id)
	if err != nil {
		h.log.Warn("approve failed", "request_id", id, "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Game request %s approved successfully!", id),
		"game":    game,
	})
}

// Reject marks a pending submission rejected
// POST /api/v1/requests/:id/reject
func (h *ReviewHandler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request id"})
	}

	var body rejectRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	if err := h.submissions.Reject(c.Request().Context(), id, body.Reason); err != nil {
		h.log.Warn("reject failed", "request_id", id, "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Game request %s rejected successfully.", id),
	})
}
