package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/handlers"
)

// RegisterPublishRoutes registers the submission upload route
func RegisterPublishRoutes(g *echo.Group, handler *handlers.PublishHandler, mw ...echo.MiddlewareFunc) {
	// POST /api/v1/games/publish - Submit a game bundle for review
	g.POST("/games/publish", handler.Publish, mw...)
}
