package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
	"github.com/elliotJHarding/transactions/internal/integration/entrypoint/dto"
)

const (
	defaultMaxAttempts    = 5
	defaultWindowDuration = time.Minute
	// sweepEvery is how many requests pass between sweeps of expired windows.
	sweepEvery = 256
)

type window struct {
	attempts int
	resetAt  time.Time
}

// RateLimiter is a fixed-window limiter keyed by client IP and route. It
// guards the unauthenticated auth endpoints.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	length      time.Duration
	disabled    bool
	seen        int
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing maxAttempts per window. Zero
// values fall back to 5 attempts per minute.
func NewRateLimiter(maxAttempts int, length time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if length <= 0 {
		length = defaultWindowDuration
	}
	return &RateLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		length:      length,
		now:         time.Now,
	}
}

// Disable turns the limiter into a pass-through, for test environments.
func (rl *RateLimiter) Disable() *RateLimiter {
	rl.disabled = true
	return rl
}

// Middleware returns a Gin middleware handler that enforces the limit.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		key := c.ClientIP() + " " + c.FullPath()
		allowed, retryAfter := rl.allow(key)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// allow records an attempt for key and reports whether it is within the limit,
// and if not, how long until the window resets.
func (rl *RateLimiter) allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.seen++
	if rl.seen%sweepEvery == 0 {
		for k, w := range rl.windows {
			if !now.Before(w.resetAt) {
				delete(rl.windows, k)
			}
		}
	}

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.resetAt) {
		rl.windows[key] = &window{attempts: 1, resetAt: now.Add(rl.length)}
		return true, 0
	}

	if w.attempts >= rl.maxAttempts {
		return false, w.resetAt.Sub(now)
	}
	w.attempts++
	return true, 0
}
