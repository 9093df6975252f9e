package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/techBikashRepo/jobbee-api/pkg/logger"
)

// RateLimiterConfig configures the fixed-window limiter backed by redis.
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Limit       int
	Window      time.Duration
	KeyPrefix   string
}

// NewRateLimiter limits requests per client IP within a window. Redis being
// unreachable fails open: the request proceeds.
func NewRateLimiter(cfg RateLimiterConfig) echo.MiddlewareFunc {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "rl:"
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			id := clientIP(c)
			if id == "" {
				id = "anonymous"
			}
			key := cfg.KeyPrefix + id

			count, err := cfg.RedisClient.Incr(ctx, key).Result()
			if err != nil {
				logger.FromEcho(c).Warn("Rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if count == 1 {
				cfg.RedisClient.Expire(ctx, key, cfg.Window)
			}

			ttl, _ := cfg.RedisClient.TTL(ctx, key).Result()
			reset := int(ttl.Seconds())
			if reset < 0 {
				reset = 0
			}

			if count > int64(cfg.Limit) {
				c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Limit))
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"success": false,
					"message": "Too many requests. Please try again later.",
				})
			}

			remaining := cfg.Limit - int(count)
			c.Response().Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.Limit))
			c.Response().Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
			c.Response().Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", reset))

			return next(c)
		}
	}
}

func clientIP(c echo.Context) string {
	xff := c.Request().Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	return c.RealIP()
}
