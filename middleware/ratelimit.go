package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/ariebrainware/healthsync-rx/config"
	"github.com/ariebrainware/healthsync-rx/util"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRateLimit  = 5
	defaultRateWindow = 15 * time.Minute
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

func rateLimitKey(endpoint, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", endpoint, clientIP)
}

// RateLimiter counts requests per client IP and path in Redis. Without Redis, or when Redis
// fails, requests are let through.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	if cfg.Limit == 0 {
		cfg.Limit = defaultRateLimit
	}
	if cfg.Window == 0 {
		cfg.Window = defaultRateWindow
	}

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		endpoint := c.Request.URL.Path

		allowed, err := checkRateLimit(c.Request.Context(), rateLimitKey(endpoint, clientIP), cfg.Limit, cfg.Window)
		if err != nil {
			util.LogSecurityEvent(util.SecurityEvent{
				EventType: util.EventSuspiciousActivity,
				IP:        clientIP,
				RequestID: c.GetString(util.RequestIDKey),
				Message:   fmt.Sprintf("Rate limit check failed: %v", err),
			})
			c.Next()
			return
		}

		if !allowed {
			util.LogRateLimitExceeded("", clientIP, endpoint)
			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests. Please try again later.",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// checkRateLimit increments the counter for key and reports whether it is still within limit.
func checkRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return true, nil
	}

	pipe := rdb.Pipeline()
	incrCmd := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return false, fmt.Errorf("failed to check rate limit: %w", err)
	}

	return incrCmd.Val() <= int64(limit), nil
}

// ResetRateLimit clears the counter of a client on an endpoint. No-op without Redis.
func ResetRateLimit(ctx context.Context, clientIP, endpoint string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, rateLimitKey(endpoint, clientIP)).Err()
}
