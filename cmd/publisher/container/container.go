package container

import (
	"github.com/redis/go-redis/v9"

	"github.com/brickengine/publisher/cmd/publisher/repository"
	"github.com/brickengine/publisher/cmd/publisher/service"
	"github.com/brickengine/publisher/common/bootstrap"
	"github.com/brickengine/publisher/common/mailer"
	"github.com/brickengine/publisher/common/ratelimit"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components *bootstrap.Components
	Redis      *redis.Client

	// Repositories
	RequestRepo *repository.GameRequestRepository
	GameRepo    *repository.GameRepository

	// Services
	Mailer            mailer.Mailer
	SubmissionService *service.SubmissionService
	CatalogService    *service.CatalogService
	RateLimiter       *ratelimit.Limiter
}

// NewContainer initializes all services and repositories once
func NewContainer(components *bootstrap.Components) (*Container, error) {
	cfg := components.Config
	log := components.Logger

	// Redis backs the publish rate limiter only; a connection failure
	// degrades to fail-open limiting rather than blocking startup.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       0,
	})

	// Repositories
	requestRepo := repository.NewGameRequestRepository(components.DB)
	gameRepo := repository.NewGameRepository(components.DB)

	// Notifier: disabled unless an API key is configured
	var mail mailer.Mailer
	if cfg.Email.APIKey != "" {
		mail = mailer.NewResend(cfg.Email.APIKey, cfg.Email.From, log)
	} else {
		log.Warn("no email API key configured, notifications disabled")
		mail = mailer.NewNop(log)
	}

	// Services (bottom-up: dependencies first)
	submissionService := service.NewSubmissionService(
		requestRepo,
		gameRepo,
		components.Store,
		mail,
		cfg,
		log,
	)
	catalogService := service.NewCatalogService(gameRepo, log)
	rateLimiter := ratelimit.NewLimiter(redisClient, log)

	return &Container{
		Components:        components,
		Redis:             redisClient,
		RequestRepo:       requestRepo,
		GameRepo:          gameRepo,
		Mailer:            mail,
		SubmissionService: submissionService,
		CatalogService:    catalogService,
		RateLimiter:       rateLimiter,
	}, nil
}
