package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	l := NewLimiter(cfg)
	clock := newFakeClock()
	l.now = clock.Now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_AllowsUpToBurst(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute})

	for i := 0; i < 5; i++ {
		allowed, info := l.Allow("10.0.0.1", "/other", "GET")
		require.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 5, info.Limit)
		assert.Equal(t, 4-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/other", "GET")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 12*time.Second, info.RetryAfter)
}

func TestLimiter_Refills(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})

	for i := 0; i < 60; i++ {
		l.Allow("10.0.0.1", "/x", "GET")
	}
	allowed, _ := l.Allow("10.0.0.1", "/x", "GET")
	require.False(t, allowed)

	clock.Advance(time.Second)
	allowed, _ = l.Allow("10.0.0.1", "/x", "GET")
	assert.True(t, allowed)

	allowed, _ = l.Allow("10.0.0.1", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_ResetTime(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: 10 * time.Second})

	_, info := l.Allow("10.0.0.1", "/x", "GET")

	assert.Equal(t, clock.Now().Add(time.Second), info.ResetTime)
	assert.Zero(t, info.RetryAfter)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute})

	allowed, _ := l.Allow("10.0.0.1", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/x", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/x", "GET")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/y", "GET")
	assert.True(t, allowed, "endpoints have separate buckets")
}

func TestLimiter_EndpointConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CleanupInterval = 0
	l, _ := newTestLimiter(t, cfg)

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
		require.True(t, allowed)
		assert.Equal(t, 60, info.Limit)
	}
	allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
	assert.False(t, allowed, "analyze burst is 10")
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, EndpointConfigs: DefaultEndpointConfigs()})

	for i := 0; i < 100; i++ {
		allowed, info := l.Allow("10.0.0.1", "/health", "GET")
		require.True(t, allowed)
		assert.Equal(t, 0, info.Limit)
	}
	assert.Equal(t, 0, l.Len())
}

func TestLimiter_Disabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: false})

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/analyze", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.9": true},
		Blacklist:     map[string]bool{"10.6.6.6": true},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/x", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.6.6.6", "/x", "GET")
	assert.False(t, allowed)
}

func TestLimiter_EvictIdle(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 5, DefaultWindow: time.Minute, IdleTTL: 10 * time.Minute})

	l.Allow("10.0.0.1", "/x", "GET")
	clock.Advance(9 * time.Minute)
	l.Allow("10.0.0.2", "/x", "GET")
	require.Equal(t, 2, l.Len())

	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, l.evictIdle())
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	l := NewLimiter(&Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute, CleanupInterval: time.Millisecond})

	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/analyze", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 50, DefaultWindow: time.Hour})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1", "/x", "GET"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: 1},
		{Path: "/reports/", Method: "GET", Limit: 2},
		{Path: "/reports/latest", Method: "GET", Limit: 3},
	}

	tests := []struct {
		path, method string
		wantLimit    int
		wantNil      bool
	}{
		{path: "/analyze", method: "POST", wantLimit: 1},
		{path: "/analyze", method: "GET", wantNil: true},
		{path: "/reports/42", method: "GET", wantLimit: 2},
		{path: "/reports/latest", method: "GET", wantLimit: 3},
		{path: "/unknown", method: "GET", wantNil: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLimit, got.Limit)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")
	t.Setenv("RATE_LIMIT_ANALYZE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_ANALYZE_BURST", "not-a-number")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	assert.Equal(t, 5, cfg.EndpointConfigs[0].Limit)
	assert.Equal(t, 10, cfg.EndpointConfigs[0].Burst, "invalid values fall back to defaults")
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
}
