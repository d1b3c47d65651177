package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket represents a token bucket for rate limiting
type TokenBucket struct {
	tokens     int           // Current tokens
	maxTokens  int           // Maximum tokens in bucket
	refillRate int           // Tokens to add per refill interval
	refillTime time.Duration // Refill interval
	lastRefill time.Time     // Last refill time
	lastUsed   time.Time     // Last time the bucket was touched
	mutex      sync.Mutex    // Thread safety
}

// RateLimiter manages send throttling per conversation. The Graph send API
// is rate limited upstream; this keeps a hot conversation from burning the
// page's budget.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

// NewTokenBucket creates a new token bucket
func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	now := time.Now()
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: now,
		lastUsed:   now,
	}
}

// Allow checks if an action is allowed and consumes a token if so
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()
	tb.lastUsed = now

	// Calculate tokens to add based on time elapsed
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	// Calculate wait time until next token is available
	nextRefill := tb.lastRefill.Add(tb.refillTime)
	waitTime := nextRefill.Sub(now)
	return false, waitTime
}

// AllowSend checks whether another outbound message may go to the given
// conversation: 10 messages per minute per conversation.
func (rl *RateLimiter) AllowSend(conversationID string) (bool, time.Duration) {
	return rl.allow("send:"+conversationID, 10, 10, time.Minute)
}

// AllowFollowUp throttles AI draft generation: 5 drafts per minute overall.
func (rl *RateLimiter) AllowFollowUp() (bool, time.Duration) {
	return rl.allow("followup", 5, 5, time.Minute)
}

func (rl *RateLimiter) allow(key string, maxTokens, refillRate int, refillTime time.Duration) (bool, time.Duration) {
	rl.mutex.Lock()
	bucket, ok := rl.buckets[key]
	if !ok {
		bucket = NewTokenBucket(maxTokens, refillRate, refillTime)
		rl.buckets[key] = bucket
	}
	rl.mutex.Unlock()

	return bucket.Allow()
}

// StartCleanupRoutine periodically drops buckets that have not been touched
// for an hour.
func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rl.cleanup()
		}
	}()
}

func (rl *RateLimiter) cleanup() {
	cutoff := time.Now().Add(-time.Hour)

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		stale := bucket.lastUsed.Before(cutoff)
		bucket.mutex.Unlock()
		if stale {
			delete(rl.buckets, key)
		}
	}
}
