package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a controllable time source for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	cur time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{cur: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cur
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.cur = f.cur.Add(d)
	f.mu.Unlock()
}

func TestCache_SetGet(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[string](time.Hour, clock.Now)

	c.SetTTL("all_programs", "payload", 6*time.Hour)

	got, ok := c.Get("all_programs")
	if !ok {
		t.Fatal("expected cache hit immediately after set")
	}
	if got != "payload" {
		t.Errorf("expected %q, got %q", "payload", got)
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[int](time.Hour, clock.Now)

	c.SetTTL("k", 42, 10*time.Minute)

	clock.Advance(9 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired too early")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry survived past its TTL")
	}

	// Self-eviction on read: the expired entry must no longer affect sweeps.
	if n := c.CleanupExpired(); n != 0 {
		t.Errorf("expected 0 entries swept after self-eviction, got %d", n)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_ExpiryBoundary(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[int](time.Hour, clock.Now)

	c.SetTTL("k", 1, 10*time.Minute)

	// Validity requires now strictly before expiry; at exactly expiry the
	// entry is gone.
	clock.Advance(10 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Error("entry must be absent at the exact expiry instant")
	}
}

func TestCache_DefaultTTL(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[string](time.Hour, clock.Now)

	c.Set("k", "v")

	clock.Advance(59 * time.Minute)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired before default TTL")
	}
	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry survived past default TTL")
	}
}

func TestCache_DeleteAndClear(t *testing.T) {
	t.Parallel()
	c := New[string](time.Hour)

	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("expected deleted key to be absent")
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("expected untouched key to remain")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d entries", c.Len())
	}
}

func TestCache_CleanupExpired(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[int](time.Hour, clock.Now)

	c.SetTTL("short", 1, 5*time.Minute)
	c.SetTTL("long", 2, 12*time.Hour)

	clock.Advance(6 * time.Minute)

	if n := c.CleanupExpired(); n != 1 {
		t.Errorf("expected 1 swept entry, got %d", n)
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("long-lived entry must survive the sweep")
	}
}

func TestCache_Overwrite(t *testing.T) {
	t.Parallel()
	clock := newFakeClock()
	c := NewWithClock[string](time.Hour, clock.Now)

	c.SetTTL("k", "old", 5*time.Minute)
	c.SetTTL("k", "new", 12*time.Hour)

	clock.Advance(time.Hour)
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("overwrite must refresh the expiry")
	}
	if got != "new" {
		t.Errorf("expected %q, got %q", "new", got)
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	c := New[int](time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("curriculum_%d", n%4)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 4 {
		t.Errorf("expected 4 distinct keys, got %d", c.Len())
	}
}
