package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter provides rate limiting functionality
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// AttemptLimiter admits at most limit attempts per key inside any rolling
// window. Keys whose attempts have all expired are dropped, so memory is
// bounded by the keys seen during the last window.
type AttemptLimiter struct {
	mu        sync.Mutex
	attempts  map[string][]time.Time
	limit     int
	window    time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewAttemptLimiter returns a limiter allowing limit attempts per window.
func NewAttemptLimiter(limit int, window time.Duration) *AttemptLimiter {
	return &AttemptLimiter{
		attempts: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// NewLoginRateLimiter limits login attempts per client IP
func NewLoginRateLimiter(attemptsPerMinute int) *AttemptLimiter {
	return NewAttemptLimiter(attemptsPerMinute, time.Minute)
}

// Allow records an attempt for key unless the key is already at its limit.
func (l *AttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	// One full pass per window keeps the map from accumulating idle keys.
	if now.Sub(l.lastSweep) >= l.window {
		l.sweep(cutoff)
		l.lastSweep = now
	}

	recent := expire(l.attempts[key], cutoff)
	if len(recent) >= l.limit {
		l.attempts[key] = recent
		return false, nil
	}
	l.attempts[key] = append(recent, now)
	return true, nil
}

// Reset forgets every attempt recorded for key.
func (l *AttemptLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attempts, key)
	return nil
}

// Len reports how many keys currently hold attempts.
func (l *AttemptLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.attempts)
}

// Limit returns the number of attempts allowed per window
func (l *AttemptLimiter) Limit() int {
	return l.limit
}

// Window returns the window size
func (l *AttemptLimiter) Window() time.Duration {
	return l.window
}

func (l *AttemptLimiter) sweep(cutoff time.Time) {
	for key, stamps := range l.attempts {
		if recent := expire(stamps, cutoff); len(recent) > 0 {
			l.attempts[key] = recent
		} else {
			delete(l.attempts, key)
		}
	}
}

// expire drops stamps at or before cutoff. Stamps are appended in order.
func expire(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	if i == len(stamps) {
		return nil
	}
	return stamps[i:]
}
