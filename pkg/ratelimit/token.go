package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// TokenLimiter enforces a token budget that refills in full once per period, e.g. LLM tokens per minute.
type TokenLimiter struct {
	mu           sync.Mutex
	capacity     int
	remaining    int
	refillPeriod time.Duration
	lastRefill   time.Time
	now          func() time.Time
}

func NewTokenLimiter(tokensPerMinute int) *TokenLimiter {
	return newTokenLimiter(tokensPerMinute, time.Minute, time.Now)
}

func newTokenLimiter(capacity int, period time.Duration, now func() time.Time) *TokenLimiter {
	return &TokenLimiter{
		capacity:     capacity,
		remaining:    capacity,
		refillPeriod: period,
		lastRefill:   now(),
		now:          now,
	}
}

// Wait takes tokens from the budget, polling until enough are available or ctx is done.
// A request larger than the whole budget can never succeed and fails immediately.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	if tokens > l.capacity {
		return fmt.Errorf("request of %d tokens exceeds budget of %d", tokens, l.capacity)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.take(tokens) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *TokenLimiter) take(tokens int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now := l.now(); now.Sub(l.lastRefill) >= l.refillPeriod {
		l.remaining = l.capacity
		l.lastRefill = now
	}
	if l.remaining < tokens {
		return false
	}
	l.remaining -= tokens
	return true
}

func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining
}
