package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/handlers"
)

// RegisterCatalogRoutes registers the public listing route
func RegisterCatalogRoutes(g *echo.Group, handler *handlers.CatalogHandler) {
	// GET /api/v1/games - List the latest version of every published game
	g.GET("/games", handler.List)
}
