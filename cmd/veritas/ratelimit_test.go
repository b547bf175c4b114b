package main

import (
	"testing"
	"time"
)

func TestCooldownDeniesWithinWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	if ok, _ := limiter.CheckAndRecord("user1"); !ok {
		t.Fatal("first invocation should be allowed")
	}

	now = now.Add(5 * time.Second)
	ok, retryAfter := limiter.CheckAndRecord("user1")
	if ok {
		t.Fatal("second invocation 5s into a 10s window should be denied")
	}
	if retryAfter != 5*time.Second {
		t.Errorf("retryAfter = %v, want 5s", retryAfter)
	}
}

func TestCooldownAllowsAfterWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	limiter.CheckAndRecord("user1")

	now = now.Add(10 * time.Second)
	if ok, _ := limiter.CheckAndRecord("user1"); !ok {
		t.Error("invocation exactly at window end should be allowed")
	}
}

func TestCooldownIsPerUser(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	limiter.CheckAndRecord("user1")
	if ok, _ := limiter.CheckAndRecord("user2"); !ok {
		t.Error("a different user must not share the cooldown")
	}
}

func TestCooldownDenialDoesNotExtendWindow(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	limiter.CheckAndRecord("user1")

	now = now.Add(9 * time.Second)
	limiter.CheckAndRecord("user1") // denied

	now = now.Add(1 * time.Second)
	if ok, _ := limiter.CheckAndRecord("user1"); !ok {
		t.Error("a denied attempt must not reset the cooldown window")
	}
}

func TestTimeUntilNext(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	if got := limiter.TimeUntilNext("unknown"); got != 0 {
		t.Errorf("TimeUntilNext for unknown user = %v, want 0", got)
	}

	limiter.CheckAndRecord("user1")
	now = now.Add(3 * time.Second)
	if got := limiter.TimeUntilNext("user1"); got != 7*time.Second {
		t.Errorf("TimeUntilNext = %v, want 7s", got)
	}
}

func TestEvictStaleKeepsMapBounded(t *testing.T) {
	now := time.Unix(1000, 0)
	limiter := NewCooldownLimiter(10 * time.Second)
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2000; i++ {
		limiter.CheckAndRecord(string(rune('a')) + time.Duration(i).String())
		now = now.Add(time.Second)
	}

	limiter.mu.Lock()
	size := len(limiter.last)
	limiter.mu.Unlock()
	if size >= 2000 {
		t.Errorf("limiter map grew to %d entries; stale entries were never evicted", size)
	}
}
