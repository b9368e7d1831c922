package mw

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterBurstThenRefill(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 2, RefillPerMin: 60})
	now := time.Now()

	ok, _ := l.allow("1.2.3.4", now)
	assert.True(t, ok)
	ok, _ = l.allow("1.2.3.4", now)
	assert.True(t, ok)

	ok, retry := l.allow("1.2.3.4", now)
	assert.False(t, ok, "burst exhausted")
	assert.GreaterOrEqual(t, retry, 1)

	// 60 per minute is one token per second.
	ok, _ = l.allow("1.2.3.4", now.Add(time.Second))
	assert.True(t, ok)
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 1})
	now := time.Now()

	ok, _ := l.allow("1.1.1.1", now)
	assert.True(t, ok)
	ok, _ = l.allow("1.1.1.1", now)
	assert.False(t, ok)

	ok, _ = l.allow("2.2.2.2", now)
	assert.True(t, ok, "a different client has its own bucket")
}

func TestLimiterDefaults(t *testing.T) {
	l := newLimiter(RateLimitConfig{})
	assert.Equal(t, 1, l.cfg.Burst)
	assert.Equal(t, 1, l.cfg.RefillPerMin)
	assert.Equal(t, 1024, l.cfg.MaxEntries)
	assert.Equal(t, 15*time.Minute, l.cfg.IdleTTL)
}

func TestLimiterEvictsIdleBuckets(t *testing.T) {
	l := newLimiter(RateLimitConfig{Burst: 1, RefillPerMin: 1, MaxEntries: 1, IdleTTL: time.Minute})
	now := time.Now()

	l.allow("1.1.1.1", now)
	assert.Len(t, l.buckets, 1)

	// At capacity with the first bucket long idle, the next client evicts it.
	l.allow("2.2.2.2", now.Add(2*time.Minute))
	_, stale := l.buckets["1.1.1.1"]
	assert.False(t, stale)
	_, fresh := l.buckets["2.2.2.2"]
	assert.True(t, fresh)
}
