package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/models"
)

// writeError converts a workflow error into the JSON error envelope.
// Anything without a known discriminant is a backing-store failure; its
// message is surfaced for operator diagnosis.
func writeError(c echo.Context, err error) error {
	status := http.StatusBadRequest

	switch {
	case errors.Is(err, models.ErrRequestNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateVersion):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrAlreadyProcessed):
		status = http.StatusBadRequest
	}

	return c.JSON(status, map[string]string{"error": err.Error()})
}
