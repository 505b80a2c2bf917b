package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// LimiterStore hands out one rate.Limiter per key, created lazily with the same rate and burst.
type LimiterStore struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	burst    int
}

func NewLimiterStore(r rate.Limit, burst int) *LimiterStore {
	return &LimiterStore{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		burst:    burst,
	}
}

// PerMinute converts a requests-per-minute budget into a rate.Limit. Non-positive budgets are unlimited.
func PerMinute(requests int) rate.Limit {
	if requests <= 0 {
		return rate.Inf
	}
	return rate.Every(time.Minute / time.Duration(requests))
}

func (s *LimiterStore) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, exists := s.limiters[key]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(s.r, s.burst)
	s.limiters[key] = limiter
	return limiter
}

// Wait blocks until the limiter for key allows one event or ctx is done.
func (s *LimiterStore) Wait(ctx context.Context, key string) error {
	return s.GetLimiter(key).Wait(ctx)
}
