package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/service"
	"github.com/brickengine/publisher/common/logger"
)

// CatalogHandler serves the public game listing
type CatalogHandler struct {
	catalog *service.CatalogService
	log     *logger.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog *service.CatalogService, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		log:     log,
	}
}

// List returns the latest version of every published game
// GET /api/v1/games
func (h *CatalogHandler) List(c echo.Context) error {
	entries, err := h.catalog.List(c.Request().Context())
	if err != nil {
		h.log.Error("failed to list games", "error", err)
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"games": entries,
	})
}
