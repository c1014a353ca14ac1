package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/cmd/publisher/handlers"
	"github.com/brickengine/publisher/cmd/publisher/middleware"
)

// RegisterReviewRoutes registers the admin decision routes. Both require a
// forwarded credential.
func RegisterReviewRoutes(g *echo.Group, handler *handlers.ReviewHandler) {
	auth := middleware.RequireCredential()

	// POST /api/v1/requests/:id/approve - Publish a pending submission
	g.POST("/requests/:id/approve", handler.Approve, auth)

	// POST /api/v1/requests/:id/reject - Reject a pending submission
	g.POST("/requests/:id/reject", handler.Reject, auth)
}
