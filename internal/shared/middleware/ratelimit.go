package middleware

import (
	"context"
	"fmt"
	"time"

	"blog-gateway/internal/shared/response"
	"blog-gateway/pkg/cache"
	"blog-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// RateLimiter decides whether a request identified by key may proceed.
// Injected rather than kept as package state so the limit survives
// multiple gateway instances when backed by Redis.
type RateLimiter interface {
	Check(ctx context.Context, key string) (allowed bool, err error)
}

// StoreRateLimiter is a fixed-window limiter on a cache.Store counter:
// INCR the window key, set the expiry on first hit, reject past the max.
type StoreRateLimiter struct {
	store  cache.Store
	max    int64
	window time.Duration
	prefix string
}

func NewStoreRateLimiter(store cache.Store, max int, window time.Duration) *StoreRateLimiter {
	return &StoreRateLimiter{
		store:  store,
		max:    int64(max),
		window: window,
		prefix: "ratelimit:",
	}
}

func (l *StoreRateLimiter) Check(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s%s:%d", l.prefix, key, time.Now().Unix()/int64(l.window.Seconds()))

	count, err := l.store.Increment(ctx, windowKey)
	if err != nil {
		return false, fmt.Errorf("rate limit check %s: %w", key, err)
	}
	if count == 1 {
		if err := l.store.Expire(ctx, windowKey, l.window); err != nil {
			logger.Error("rate limit expire failed", err)
		}
	}
	return count <= l.max, nil
}

// RateLimit guards mutation routes. Fails open when the backing store is
// unreachable: throttling is protection, not a correctness requirement.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Check(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Error("rate limiter unavailable", err)
			c.Next()
			return
		}
		if !allowed {
			response.TooManyRequests(c, "too many requests, slow down")
			c.Abort()
			return
		}
		c.Next()
	}
}
