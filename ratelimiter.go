package qsim

import (
	"sync"
	"time"
)

/*
RateLimiter is a token bucket Regulator. Every admitted job takes a token and
one token is added back per refillRate, up to maxTokens, so an experiment can
burst maxTokens trials and then runs at a steady rate.
*/
type RateLimiter struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     max(maxTokens, 1),
		maxTokens:  max(maxTokens, 1),
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Observe is a no-op, the bucket paces by time alone.
func (rl *RateLimiter) Observe(*Metrics) {}

// Limit takes a token if one is available.
func (rl *RateLimiter) Limit() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refill()
	if rl.tokens > 0 {
		rl.tokens--
		return false
	}
	return true
}

func (rl *RateLimiter) Renormalize() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
}

// Tokens returns the tokens currently available.
func (rl *RateLimiter) Tokens() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refill()
	return rl.tokens
}

// refill assumes rl.mu is held.
func (rl *RateLimiter) refill() {
	if rl.refillRate <= 0 {
		rl.tokens = rl.maxTokens
		return
	}

	periods := time.Since(rl.lastRefill) / rl.refillRate
	if periods <= 0 {
		return
	}
	rl.tokens = min(rl.maxTokens, rl.tokens+int(periods))
	rl.lastRefill = rl.lastRefill.Add(periods * rl.refillRate)
}
