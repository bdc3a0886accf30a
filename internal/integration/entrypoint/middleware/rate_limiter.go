// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/ventureboard/backend/internal/domain/error"
	"github.com/ventureboard/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxRuns is how many maintenance runs an owner may start per window.
	defaultMaxRuns = 10
	defaultWindow  = time.Minute
)

// window counts the runs of one key inside a fixed window.
type window struct {
	runs    int
	resetAt time.Time
}

// RateLimiter throttles the intercompany maintenance endpoints per authenticated
// owner, or per client IP when the request carries no identity.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	maxRuns int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows defaultMaxRuns per minute.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(defaultMaxRuns, defaultWindow)
}

func NewRateLimiterWithConfig(maxRuns int, windowDuration time.Duration) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*window),
		maxRuns: maxRuns,
		window:  windowDuration,
		now:     time.Now,
	}
}

// Middleware rejects requests over the limit with 429 and a Retry-After header.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		retryAfter, ok := rl.take(rateLimitKey(c))
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many maintenance runs. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}
		c.Next()
	}
}

func rateLimitKey(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok {
		return "user:" + userID.String()
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:" + c.Request.RemoteAddr
}

// take records a run for key and reports whether it fits in the current window.
// When it does not, the time until the window resets is returned.
func (rl *RateLimiter) take(key string) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.entries[key]
	if !ok || !now.Before(w.resetAt) {
		rl.entries[key] = &window{runs: 1, resetAt: now.Add(rl.window)}
		return 0, true
	}
	if w.runs >= rl.maxRuns {
		return w.resetAt.Sub(now), false
	}
	w.runs++
	return 0, true
}

// Reset forgets every key.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*window)
}

// Cleanup drops keys whose window has ended. cmd/api runs it on a ticker.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.entries {
		if !now.Before(w.resetAt) {
			delete(rl.entries, key)
		}
	}
}
