// Lamont.ai | 2026
// limiter_test.go

package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLimiterAllowsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("ip:203.0.113.7", 5)
		require.True(t, allowed, "attempt %d", i+1)
	}

	allowed, retryAfter := limiter.Allow("ip:203.0.113.7", 5)
	require.False(t, allowed)
	require.Equal(t, 24*time.Hour, retryAfter)
}

func TestLimiterRetryAfterShrinksWithElapsedTime(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("ip:203.0.113.7", 5)
	}

	clock.Advance(10 * time.Hour)

	allowed, retryAfter := limiter.Allow("ip:203.0.113.7", 5)
	require.False(t, allowed)
	require.Equal(t, 14*time.Hour, retryAfter)
}

func TestLimiterWindowResets(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("ip:203.0.113.7", 5)
	}

	allowed, _ := limiter.Allow("ip:203.0.113.7", 5)
	require.False(t, allowed)

	clock.Advance(24 * time.Hour)

	allowed, _ = limiter.Allow("ip:203.0.113.7", 5)
	require.True(t, allowed)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	for i := 0; i < 5; i++ {
		limiter.Allow("ip:203.0.113.7", 5)
	}

	allowed, _ := limiter.Allow("ip:203.0.113.8", 5)
	require.True(t, allowed)

	allowed, _ = limiter.Allow("email:alice@example.com", 3)
	require.True(t, allowed)
}

func TestLimiterDistinctLimitsPerCall(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	for i := 0; i < 3; i++ {
		allowed, _ := limiter.Allow("email:alice@example.com", 3)
		require.True(t, allowed)
	}

	allowed, _ := limiter.Allow("email:alice@example.com", 3)
	require.False(t, allowed)
}

func TestLimiterSizeCountsOpenWindows(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	require.Zero(t, limiter.Size())

	limiter.Allow("ip:203.0.113.7", 5)
	limiter.Allow("ip:203.0.113.7", 5)
	limiter.Allow("email:alice@example.com", 3)

	require.Equal(t, 2, limiter.Size())
}

func TestLimiterConcurrentAccess(t *testing.T) {
	clock := newFakeClock()
	limiter := newRegistrationLimiterAt(24*time.Hour, clock.Now)

	const attempts = 20

	var wg sync.WaitGroup
	results := make([]bool, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = limiter.Allow("ip:203.0.113.7", 5)
		}(i)
	}
	wg.Wait()

	allowed := 0
	for _, ok := range results {
		if ok {
			allowed++
		}
	}
	require.Equal(t, 5, allowed)
}
