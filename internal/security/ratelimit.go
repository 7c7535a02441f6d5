package security

import (
	"context"
	"sync"
	"time"
)

// RateLimiter allows a fixed number of requests per key in each window.
// Keys are session ids for answer submissions.
type RateLimiter struct {
	visitors map[string]*visitor
	mu       sync.Mutex
	rate     int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a new rate limiter
// rate: number of requests allowed per window
// window: time window for rate limiting
// A non-positive rate disables limiting.
func NewRateLimiter(rate int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		rate:     rate,
		window:   window,
		now:      time.Now,
	}
}

// Allow checks whether another request for key fits in the current window
func (rl *RateLimiter) Allow(key string) bool {
	if rl.rate <= 0 {
		return true
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, exists := rl.visitors[key]
	if !exists || now.Sub(v.lastRefill) >= rl.window {
		v = &visitor{tokens: rl.rate, lastRefill: now}
		rl.visitors[key] = v
	}

	if v.tokens > 0 {
		v.tokens--
		return true
	}
	return false
}

// Cleanup removes keys whose window has long passed and returns how many were removed
func (rl *RateLimiter) Cleanup() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	now := rl.now()
	for key, v := range rl.visitors {
		if now.Sub(v.lastRefill) > rl.window*2 {
			delete(rl.visitors, key)
			removed++
		}
	}
	return removed
}

// Run calls Cleanup every interval until ctx is done
func (rl *RateLimiter) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
