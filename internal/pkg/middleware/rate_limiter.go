package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/piresc/ticketing/internal/pkg/logger"
	"github.com/piresc/ticketing/internal/utils"
)

// RateLimiterConfig contains configuration for the rate limiter
type RateLimiterConfig struct {
	RedisClient *redis.Client
	Key         string        // Key prefix for Redis
	Limit       int           // Maximum number of requests
	Period      time.Duration // Time period for the limit
}

// RateLimiterMiddleware creates a fixed-window rate limiter backed by Redis.
// Redis failures let the request through.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.RedisClient == nil || config.Limit <= 0 {
				return next(c)
			}

			identifier := c.RealIP()
			if userID, ok := c.Get(ContextKeyUserID).(string); ok && userID != "" {
				identifier = userID
			}
			key := fmt.Sprintf("%s:%s:%s", config.Key, c.Path(), identifier)
			ctx := c.Request().Context()

			var incr *redis.IntCmd
			var window *redis.DurationCmd
			_, err := config.RedisClient.Pipelined(ctx, func(pipe redis.Pipeliner) error {
				incr = pipe.Incr(ctx, key)
				window = pipe.TTL(ctx, key)
				return nil
			})
			if err != nil {
				logger.Warn("Rate limiter unavailable, allowing request",
					logger.String("route", c.Path()),
					logger.Err(err))
				return next(c)
			}
			count := incr.Val()

			// a key without expiry is a new window, or one whose EXPIRE was lost
			ttl := window.Val()
			if ttl < 0 {
				ttl = config.Period
				if err := config.RedisClient.Expire(ctx, key, config.Period).Err(); err != nil {
					logger.Warn("Failed to set rate limit window",
						logger.String("key", key),
						logger.Err(err))
				}
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(config.Limit))

			if count > int64(config.Limit) {
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(ttl).Unix(), 10))
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(ttl.Seconds()), 10))

				return utils.TooManyRequestsResponse(c, "Rate limit exceeded")
			}

			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(config.Limit)-count, 10))
			return next(c)
		}
	}
}

// IPRateLimiter creates a simple IP-based rate limiter
func IPRateLimiter(limit int, period time.Duration, redisClient *redis.Client) echo.MiddlewareFunc {
	return RateLimiterMiddleware(RateLimiterConfig{
		RedisClient: redisClient,
		Key:         "rate:ip",
		Limit:       limit,
		Period:      period,
	})
}
