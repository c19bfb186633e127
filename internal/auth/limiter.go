// Lamont.ai | 2026
// limiter.go

package auth

import (
	"fmt"
	"sync"
	"time"
)

// RegistrationLimiter is a fixed-window attempt counter keyed by an opaque
// string (client IP or normalized email). State is process-local and lost on
// restart: it is a soft anti-abuse control, not a security boundary. The
// counter resets once the window since the first attempt elapses.
//
// It is an injected dependency rather than package-level state so tests can
// run it against a fake clock and multiple instances stay independent.
type RegistrationLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	window  time.Duration
	now     func() time.Time
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

const sweepInterval = time.Hour

func NewRegistrationLimiter(window time.Duration) *RegistrationLimiter {
	l := &RegistrationLimiter{
		entries: make(map[string]*windowEntry),
		window:  window,
		now:     time.Now,
	}
	go l.sweep()
	return l
}

// newRegistrationLimiterAt is the test constructor; it takes a clock and
// starts no sweeper.
func newRegistrationLimiterAt(
	window time.Duration,
	now func() time.Time,
) *RegistrationLimiter {
	return &RegistrationLimiter{
		entries: make(map[string]*windowEntry),
		window:  window,
		now:     now,
	}
}

// Allow records one attempt under key and reports whether it is within
// limit. When denied, retryAfter says how long until the window resets.
// Concurrent increments for the same key are serialized by the mutex.
func (l *RegistrationLimiter) Allow(
	key string,
	limit int,
) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	entry, ok := l.entries[key]
	if !ok || now.Sub(entry.windowStart) >= l.window {
		l.entries[key] = &windowEntry{count: 1, windowStart: now}
		return true, 0
	}

	if entry.count < limit {
		entry.count++
		return true, 0
	}

	return false, l.window - now.Sub(entry.windowStart)
}

// Size reports how many keys currently hold an open window, for admin
// visibility.
func (l *RegistrationLimiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *RegistrationLimiter) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := l.now()
		for key, entry := range l.entries {
			if now.Sub(entry.windowStart) >= l.window {
				delete(l.entries, key)
			}
		}
		l.mu.Unlock()
	}
}

// RateLimitError carries the retry hint to the HTTP layer.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf(
		"too many registration attempts, retry after %s",
		e.RetryAfter,
	)
}
