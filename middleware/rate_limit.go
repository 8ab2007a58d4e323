package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/TwoPessoas/admin-varejo-da-sorte-sub001/services/toast"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc is a function that returns a unique key for rate limiting (defaults to IP)
	KeyFunc func(c echo.Context) string
	// Message is the error message returned when rate limit is exceeded
	Message string
}

// rateLimitEntry tracks request count and window expiration
type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window limiter shared by the routes it wraps
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
	}

	go rl.cleanup()

	return rl
}

// allow records a request for key and reports whether it fits in the window
func (rl *RateLimiter) allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true
	}
	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return rl.MiddlewareWithSkipper(nil)
}

// MiddlewareWithSkipper returns the rate limiting middleware; requests for which skipper
// returns true are neither counted nor limited
func (rl *RateLimiter) MiddlewareWithSkipper(skipper func(c echo.Context) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipper != nil && skipper(c) {
				return next(c)
			}
			if rl.allow(rl.config.KeyFunc(c), time.Now()) {
				return next(c)
			}

			if strings.HasPrefix(c.Request().URL.Path, "/api/") {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"message": rl.config.Message})
			}
			if c.Request().Header.Get("HX-Request") == "true" {
				// htmx does not swap 429 bodies; surface the message as a toast instead
				q := &toast.Queue{}
				q.Push(toast.LevelError, rl.config.Message)
				if trigger, err := q.TriggerHeader(); err == nil {
					c.Response().Header().Set("HX-Trigger", trigger)
				}
				return c.NoContent(http.StatusTooManyRequests)
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for key, entry := range rl.store {
			if now.After(entry.expiresAt) {
				delete(rl.store, key)
			}
		}
		rl.mu.Unlock()
	}
}

// authenticatedKey buckets API callers by the key RequireAPIKey accepted. The raw header is
// never used: unauthenticated values are attacker-chosen.
func authenticatedKey(c echo.Context) string {
	if apiKey := GetAPIKey(c); apiKey != nil {
		return "key:" + apiKey.Prefix
	}
	return "ip:" + c.RealIP()
}

// APIRateLimiter limits backoffice API requests to 60 per minute per client IP. It runs
// before authentication, so it also bounds key guessing.
var APIRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 60,
	Window:   1 * time.Minute,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})

// APIKeyRateLimiter limits backoffice API requests to 60 per minute per authenticated key
var APIKeyRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 60,
	Window:   1 * time.Minute,
	KeyFunc:  authenticatedKey,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})

// FormRateLimiter limits admin form submissions to 30 per minute per IP
var FormRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 30,
	Window:   1 * time.Minute,
	Message:  "Too many form submissions. Please wait before trying again.",
})
