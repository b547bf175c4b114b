// cmd/veritas/ratelimit.go
package main

import (
	"sync"
	"time"
)

// CooldownLimiter gates invocations per user: one accepted invocation per
// cooldown window, tracked as the user's last accepted timestamp
type CooldownLimiter struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	now    func() time.Time
}

// NewCooldownLimiter creates a per-user cooldown limiter
func NewCooldownLimiter(window time.Duration) *CooldownLimiter {
	return &CooldownLimiter{
		window: window,
		last:   make(map[string]time.Time),
		now:    time.Now,
	}
}

// CheckAndRecord reports whether the user may invoke now. An accepted
// invocation records the timestamp; a denied one returns the remaining
// wait time and leaves the record untouched.
func (cl *CooldownLimiter) CheckAndRecord(userID string) (bool, time.Duration) {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	now := cl.now()

	lastUse, exists := cl.last[userID]
	if exists {
		elapsed := now.Sub(lastUse)
		if elapsed < cl.window {
			return false, cl.window - elapsed
		}
	}

	cl.last[userID] = now
	cl.evictStale(now)
	return true, 0
}

// TimeUntilNext returns the remaining cooldown for a user without
// recording anything
func (cl *CooldownLimiter) TimeUntilNext(userID string) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()

	lastUse, exists := cl.last[userID]
	if !exists {
		return 0
	}

	elapsed := cl.now().Sub(lastUse)
	if elapsed >= cl.window {
		return 0
	}
	return cl.window - elapsed
}

// evictStale drops entries whose cooldown has long elapsed, keeping the
// map bounded to recently active users. Called with the lock held, and
// only once the map is worth sweeping.
func (cl *CooldownLimiter) evictStale(now time.Time) {
	if len(cl.last) < 1024 {
		return
	}
	for id, t := range cl.last {
		if now.Sub(t) >= cl.window {
			delete(cl.last, id)
		}
	}
}
