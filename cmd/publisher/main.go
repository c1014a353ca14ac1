package main

import (
	"context"
	"fmt"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/brickengine/publisher/cmd/publisher/container"
	"github.com/brickengine/publisher/cmd/publisher/handlers"
	"github.com/brickengine/publisher/cmd/publisher/routes"
	"github.com/brickengine/publisher/common/bootstrap"
	"github.com/brickengine/publisher/common/db"
	commonmw "github.com/brickengine/publisher/common/middleware"
	"github.com/brickengine/publisher/common/server"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, DB, bundle store)
	components, err := bootstrap.Setup(ctx, "publisher",
		bootstrap.WithDBInitHook(func(d *db.DB) error {
			return d.ApplySchema(ctx)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap publisher: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (singleton pattern - all services created once)
	serviceContainer, err := container.NewContainer(components)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize service container: %v\n", err)
		os.Exit(1)
	}

	e := setupEcho()
	setupMiddleware(e)
	setupHealthCheck(e, components)
	registerRoutes(e, serviceContainer)

	// Start with graceful shutdown
	srv := server.New("publisher", components.Config.Service.Port, e, components.Logger)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestID())
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, components *bootstrap.Components) {
	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"service": "publisher",
		})
	})
}

// registerRoutes registers all application routes using the service container
func registerRoutes(e *echo.Echo, serviceContainer *container.Container) {
	components := serviceContainer.Components
	cfg := components.Config

	api := e.Group("/api/v1")

	publishHandler := handlers.NewPublishHandler(serviceContainer.SubmissionService, components.Logger)
	reviewHandler := handlers.NewReviewHandler(serviceContainer.SubmissionService, components.Logger)
	catalogHandler := handlers.NewCatalogHandler(serviceContainer.CatalogService, components.Logger)

	var publishMW []echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		publishMW = append(publishMW,
			commonmw.GlobalPublishRateLimit(serviceContainer.RateLimiter, cfg.RateLimit.PublishGlobal, cfg.RateLimit.WindowSeconds),
			commonmw.SourcePublishRateLimit(serviceContainer.RateLimiter, cfg.RateLimit.PublishPerSource, cfg.RateLimit.WindowSeconds),
		)
	}

	routes.RegisterPublishRoutes(api, publishHandler, publishMW...)
	routes.RegisterReviewRoutes(api, reviewHandler)
	routes.RegisterCatalogRoutes(api, catalogHandler)
}
