package bootstrap

import (
	"context"
	"fmt"

	"github.com/brickengine/publisher/common/config"
	"github.com/brickengine/publisher/common/db"
	"github.com/brickengine/publisher/common/logger"
	"github.com/brickengine/publisher/common/objstore"
)

// Setup initializes all service components.
// This is the main entry point for the service binary.
func Setup(ctx context.Context, serviceName string, opts ...Option) (*Components, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	components := &Components{
		cleanupFuncs: make([]func() error, 0),
	}

	// 1. Load configuration
	var err error
	if options.customConfig != nil {
		components.Config = options.customConfig
	} else {
		components.Config, err = config.Load(serviceName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	// 2. Initialize logger
	if options.customLogger != nil {
		components.Logger = options.customLogger
	} else {
		components.Logger = logger.New(
			components.Config.Service.LogLevel,
			components.Config.Service.LogFormat,
		)
	}

	components.Logger.Info("initializing service",
		"service", serviceName,
		"environment", components.Config.Service.Environment,
	)

	// 3. Initialize database (if not skipped)
	if !options.skipDB {
		components.Logger.Info("connecting to database")
		components.DB, err = db.New(ctx, components.Config, components.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		components.addCleanup(func() error {
			components.DB.Close()
			return nil
		})

		if options.dbInitHook != nil {
			components.Logger.Info("running database init hook")
			if err := options.dbInitHook(components.DB); err != nil {
				components.Shutdown(ctx)
				return nil, fmt.Errorf("database init hook failed: %w", err)
			}
		}
	}

	// 4. Initialize bundle object store (if not skipped)
	if !options.skipStore {
		components.Logger.Info("opening bundle store",
			"driver", components.Config.Storage.Driver,
		)

		components.Store, err = objstore.Open(ctx, objstore.Config{
			Driver:         components.Config.Storage.Driver,
			Bucket:         components.Config.Storage.Bucket,
			Region:         components.Config.Storage.Region,
			Endpoint:       components.Config.Storage.Endpoint,
			ForcePathStyle: components.Config.Storage.ForcePathStyle,
			BaseDir:        components.Config.Storage.BaseDir,
			PublicBaseURL:  components.Config.Storage.PublicBaseURL,
		})
		if err != nil {
			components.Shutdown(ctx)
			return nil, fmt.Errorf("failed to open bundle store: %w", err)
		}

		components.addCleanup(func() error {
			components.Logger.Info("closing bundle store")
			return components.Store.Close()
		})
	}

	components.Logger.Info("service initialization complete",
		"service", serviceName,
		"db", components.DB != nil,
		"store", components.Store != nil,
	)

	return components, nil
}
