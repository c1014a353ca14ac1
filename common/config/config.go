package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service configuration
type Config struct {
	Service   ServiceConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
}

// ServiceConfig holds service-specific settings
type ServiceConfig struct {
	Name        string
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
}

// DatabaseConfig holds Postgres connection settings
type DatabaseConfig struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	MaxConns    int
	MinConns    int
	MaxIdleTime time.Duration
	MaxLifetime time.Duration
}

// StorageConfig holds bundle object store settings
type StorageConfig struct {
	// Driver selects the bucket backend: "s3", "file" or "mem"
	Driver         string
	Bucket         string
	Region         string
	Endpoint       string
	ForcePathStyle bool
	BaseDir        string

	// PublicBaseURL is the base under which stored objects are reachable.
	// It may name a host that only resolves inside the deployment network.
	PublicBaseURL string
	// ExternalBaseURL replaces PublicBaseURL in URLs handed out to clients.
	ExternalBaseURL string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// EmailConfig holds notification settings
type EmailConfig struct {
	// APIKey authenticates against the Resend API. Empty disables email.
	APIKey     string
	From       string
	AdminEmail string
}

// RateLimitConfig holds publish rate limit settings
type RateLimitConfig struct {
	Enabled          bool
	PublishPerSource int64
	PublishGlobal    int64
	WindowSeconds    int
}

// Load loads configuration from environment variables.
// A .env file in the working directory is applied first when present.
func Load(serviceName string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Service: ServiceConfig{
			Name:        serviceName,
			Port:        getEnvInt("PORT", 8080),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Host:        getEnv("POSTGRES_HOST", "localhost"),
			Port:        getEnvInt("POSTGRES_PORT", 5432),
			Database:    getEnv("POSTGRES_DB", "publisher"),
			User:        getEnv("POSTGRES_USER", "publisher"),
			Password:    getEnv("POSTGRES_PASSWORD", "publisher"),
			MaxConns:    getEnvInt("POSTGRES_MAX_CONNS", 20),
			MinConns:    getEnvInt("POSTGRES_MIN_CONNS", 2),
			MaxIdleTime: getEnvDuration("POSTGRES_MAX_IDLE_TIME", 30*time.Minute),
			MaxLifetime: getEnvDuration("POSTGRES_MAX_LIFETIME", 1*time.Hour),
		},
		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "file"),
			Bucket:          getEnv("STORAGE_BUCKET", "game-bundles"),
			Region:          getEnv("STORAGE_REGION", ""),
			Endpoint:        getEnv("STORAGE_ENDPOINT", ""),
			ForcePathStyle:  getEnvBool("STORAGE_FORCE_PATH_STYLE", false),
			BaseDir:         getEnv("STORAGE_BASE_DIR", "./data/bundles"),
			PublicBaseURL:   getEnv("STORAGE_PUBLIC_BASE_URL", "http://localhost:8080/bundles"),
			ExternalBaseURL: getEnv("STORAGE_EXTERNAL_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Email: EmailConfig{
			APIKey:     getEnv("RESEND_API_KEY", ""),
			From:       getEnv("EMAIL_FROM", "notifications@resend.dev"),
			AdminEmail: getEnv("ADMIN_EMAIL", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:          getEnvBool("RATE_LIMIT_ENABLED", true),
			PublishPerSource: int64(getEnvInt("RATE_LIMIT_PUBLISH_PER_SOURCE", 10)),
			PublishGlobal:    int64(getEnvInt("RATE_LIMIT_PUBLISH_GLOBAL", 100)),
			WindowSeconds:    getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
	}

	return cfg, cfg.Validate()
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.Service.Port < 1 || c.Service.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Service.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("max_conns must be >= min_conns")
	}

	switch strings.ToLower(c.Storage.Driver) {
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("bucket required for s3 storage driver")
		}
	case "file":
		if c.Storage.BaseDir == "" {
			return fmt.Errorf("base dir required for file storage driver")
		}
	case "mem":
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	if c.Storage.PublicBaseURL == "" {
		return fmt.Errorf("storage public base URL is required")
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

// RedisAddr returns the Redis host:port address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
