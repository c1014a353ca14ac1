package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/brickengine/publisher/common/ratelimit"
)

// GlobalPublishRateLimit caps total publish throughput across all clients.
// On limiter errors the request is allowed through (fail open for
// availability).
func GlobalPublishRateLimit(limiter *ratelimit.Limiter, limit int64, windowSec int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			result, err := limiter.CheckGlobalPublishLimit(c.Request().Context(), limit, windowSec)
			if err != nil {
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "publish rate limit exceeded, please try again later",
					"details": map[string]interface{}{
						"limit":               result.Limit,
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}

// SourcePublishRateLimit caps publish throughput per client address
func SourcePublishRateLimit(limiter *ratelimit.Limiter, limit int64, windowSec int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			source := c.RealIP()
			if source == "" {
				return next(c)
			}

			result, err := limiter.CheckSourceLimit(c.Request().Context(), source, limit, windowSec)
			if err != nil {
				return next(c)
			}

			if !result.Allowed {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error": "you have exceeded your publish quota, please wait before trying again",
					"details": map[string]interface{}{
						"limit":               result.Limit,
						"current_count":       result.CurrentCount,
						"retry_after_seconds": result.RetryAfterSeconds,
					},
				})
			}

			return next(c)
		}
	}
}
