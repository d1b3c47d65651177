package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 3, time.Minute)

	for i := 0; i < 3; i++ {
		allowed, _ := bucket.Allow()
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, wait := bucket.Allow()
	assert.False(t, allowed)
	assert.Greater(t, wait, time.Duration(0))
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 1, 10*time.Millisecond)

	allowed, _ := bucket.Allow()
	assert.True(t, allowed)
	allowed, _ = bucket.Allow()
	assert.False(t, allowed)

	time.Sleep(15 * time.Millisecond)
	allowed, _ = bucket.Allow()
	assert.True(t, allowed)
}

func TestAllowSendIsPerConversation(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.AllowSend("c1")
		assert.True(t, allowed)
	}
	allowed, _ := limiter.AllowSend("c1")
	assert.False(t, allowed)

	// A different conversation has its own budget.
	allowed, _ = limiter.AllowSend("c2")
	assert.True(t, allowed)
}

func TestAllowFollowUpIsGlobal(t *testing.T) {
	limiter := NewRateLimiter()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.AllowFollowUp()
		assert.True(t, allowed)
	}
	allowed, _ := limiter.AllowFollowUp()
	assert.False(t, allowed)
}

func TestCleanupDropsStaleBuckets(t *testing.T) {
	limiter := NewRateLimiter()
	limiter.AllowSend("c1")

	limiter.mutex.Lock()
	limiter.buckets["send:c1"].lastUsed = time.Now().Add(-2 * time.Hour)
	limiter.mutex.Unlock()

	limiter.cleanup()

	limiter.mutex.RLock()
	_, ok := limiter.buckets["send:c1"]
	limiter.mutex.RUnlock()
	assert.False(t, ok)
}
