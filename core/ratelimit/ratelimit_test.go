package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

func newTestMemoryStore(limit int, window time.Duration) (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC)}
	s := NewMemoryStore(Options{Limit: limit, Window: window})
	s.now = clock.Now
	return s, clock
}

func TestMemoryStore_Allow(t *testing.T) {
	s, clock := newTestMemoryStore(2, time.Minute)
	ctx := context.Background()

	steps := []struct {
		name          string
		advance       time.Duration
		wantAllowed   bool
		wantRemaining int
	}{
		{"first hit", 0, true, 1},
		{"second hit", 10 * time.Second, true, 0},
		{"over limit", 10 * time.Second, false, 0},
		{"new window", time.Minute, true, 1},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			clock.Advance(step.advance)
			allowed, remaining, _, err := s.Allow(ctx, "10.0.0.1")
			if err != nil {
				t.Fatalf("Allow() error = %v", err)
			}
			if allowed != step.wantAllowed || remaining != step.wantRemaining {
				t.Errorf("Allow() = (%v, %d), want (%v, %d)", allowed, remaining, step.wantAllowed, step.wantRemaining)
			}
		})
	}
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	s, _ := newTestMemoryStore(1, time.Minute)
	ctx := context.Background()

	if ok, _, _, _ := s.Allow(ctx, "a"); !ok {
		t.Fatal("first hit for a rejected")
	}
	if ok, _, _, _ := s.Allow(ctx, "a"); ok {
		t.Fatal("second hit for a allowed")
	}
	if ok, _, _, _ := s.Allow(ctx, "b"); !ok {
		t.Fatal("first hit for b rejected")
	}
}

func TestMemoryStore_SweepEvictsIdleEntries(t *testing.T) {
	s, clock := newTestMemoryStore(10, time.Minute)
	ctx := context.Background()

	_, _, _, _ = s.Allow(ctx, "idle")
	clock.Advance(45 * time.Minute)
	_, _, _, _ = s.Allow(ctx, "active")
	clock.Advance(20 * time.Minute)

	if removed := s.Sweep(); removed != 1 {
		t.Fatalf("Sweep() removed %d, want 1", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestMemoryStore_StopIsIdempotent(t *testing.T) {
	s, _ := newTestMemoryStore(1, time.Minute)
	s.StartSweeper(context.Background(), time.Hour)
	s.Stop()
	s.Stop()
}

type fakeCache struct {
	mu      sync.Mutex
	counts  map[string]int64
	expires map[string]time.Duration
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: map[string]int64{}, expires: map[string]time.Duration{}}
}

func (f *fakeCache) Ping(context.Context) error { return nil }
func (f *fakeCache) Close() error               { return nil }

// IncrWindow mirrors SET NX EX + INCR: the expiry is only set when the key is created.
func (f *fakeCache) IncrWindow(_ context.Context, key string, ttl time.Duration) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return 0, f.err
	}
	if _, ok := f.counts[key]; !ok {
		f.expires[key] = ttl
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCache) TTL(_ context.Context, key string) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expires[key], nil
}

func TestRedisStore_Allow(t *testing.T) {
	fc := newFakeCache()
	s := NewRedisStore(fc, Options{Limit: 2, Window: 30 * time.Second})
	ctx := context.Background()

	want := []bool{true, true, false}
	for i, w := range want {
		allowed, _, reset, err := s.Allow(ctx, "1.2.3.4")
		if err != nil {
			t.Fatalf("hit %d: error = %v", i, err)
		}
		if allowed != w {
			t.Errorf("hit %d: allowed = %v, want %v", i, allowed, w)
		}
		if reset.IsZero() {
			t.Errorf("hit %d: reset not set", i)
		}
	}

	if ttl := fc.expires["ratelimit:1.2.3.4"]; ttl != 30*time.Second {
		t.Errorf("expiry = %v, want 30s", ttl)
	}
}

func TestRedisStore_ExpirySetOnceWithCounter(t *testing.T) {
	fc := newFakeCache()
	s := NewRedisStore(fc, Options{Limit: 5, Window: time.Minute})
	ctx := context.Background()

	if _, _, _, err := s.Allow(ctx, "5.6.7.8"); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	// A later hit must not extend the window.
	fc.expires["ratelimit:5.6.7.8"] = 10 * time.Second
	if _, _, _, err := s.Allow(ctx, "5.6.7.8"); err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if ttl := fc.expires["ratelimit:5.6.7.8"]; ttl != 10*time.Second {
		t.Errorf("expiry = %v, want untouched 10s", ttl)
	}
}

func TestRedisStore_CacheError(t *testing.T) {
	fc := newFakeCache()
	fc.err = errors.New("connection refused")
	s := NewRedisStore(fc, Options{Limit: 5, Window: time.Minute})

	if _, _, _, err := s.Allow(context.Background(), "5.6.7.8"); err == nil {
		t.Fatal("Allow() error = nil, want cache error")
	}
	if len(fc.counts) != 0 {
		t.Errorf("counts = %v, want none on failure", fc.counts)
	}
}
