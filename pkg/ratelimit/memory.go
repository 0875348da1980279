package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter is a process-local sliding-window limiter. Each key keeps the
// timestamps of its recent hits; hits older than the window are discarded on
// every check. Suitable for single-instance deployments and tests.
type MemoryLimiter struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

// NewMemoryLimiter constructs an empty in-process limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// IsLimited reports whether key already spent maxHits inside the window and
// records the hit otherwise.
func (l *MemoryLimiter) IsLimited(_ context.Context, key string, maxHits int, window time.Duration) (bool, error) {
	if maxHits <= 0 || window <= 0 {
		return false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-window)

	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}

	if len(recent) >= maxHits {
		l.hits[key] = recent
		return true, nil
	}

	l.hits[key] = append(recent, now)
	return false, nil
}
