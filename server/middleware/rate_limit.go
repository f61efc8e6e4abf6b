// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimiter keeps a token bucket per key (client IP for the HTTP
// middleware) so one noisy client cannot starve analysis requests.
type RateLimiter struct {
	mu      sync.Mutex
	limits  map[string]*rate.Limiter
	perSec  rate.Limit
	burst   int
	maxKeys int
}

// NewRateLimiter creates a limiter allowing perSec requests per second with
// the given burst per key.
func NewRateLimiter(perSec float64, burst int) *RateLimiter {
	if perSec <= 0 {
		perSec = 10
	}
	if burst <= 0 {
		burst = 20
	}
	return &RateLimiter{
		limits:  make(map[string]*rate.Limiter),
		perSec:  rate.Limit(perSec),
		burst:   burst,
		maxKeys: 4096,
	}
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	// Crude eviction; single-tenant deployments never get close.
	if len(rl.limits) >= rl.maxKeys {
		rl.limits = make(map[string]*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.perSec, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

// Wait blocks until a request is allowed or the context ends.
func (rl *RateLimiter) Wait(ctx context.Context, key string) error {
	return rl.getLimiter(key).Wait(ctx)
}

// Echo returns an echo middleware that rate limits by client IP and answers
// 429 with a Retry-After hint when the bucket is empty.
func (rl *RateLimiter) Echo() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !rl.Allow(c.RealIP()) {
				c.Response().Header().Set("Retry-After", time.Second.String())
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
