package ratelimit

import (
	"context"
	"sync"
	"time"

	"hr-dashboard-api/core/constants"
	"hr-dashboard-api/core/logger"
)

type window struct {
	count    int
	start    time.Time
	lastSeen time.Time
}

// MemoryStore keeps counters in process memory. It is the fallback when Redis is
// not configured, so limits are per instance.
type MemoryStore struct {
	opts    Options
	maxAge  time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[string]*window
	stop    chan struct{}
	once    sync.Once
}

func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:    opts,
		maxAge:  constants.RateLimitEntryMaxAge,
		now:     time.Now,
		entries: make(map[string]*window),
		stop:    make(chan struct{}),
	}
}

func (s *MemoryStore) Allow(_ context.Context, key string) (bool, int, time.Time, error) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.entries[key]
	if !ok || now.Sub(w.start) >= s.opts.Window {
		w = &window{start: now}
		s.entries[key] = w
	}
	w.count++
	w.lastSeen = now

	remaining := s.opts.Limit - w.count
	if remaining < 0 {
		remaining = 0
	}
	return w.count <= s.opts.Limit, remaining, w.start.Add(s.opts.Window), nil
}

// Sweep drops entries idle for longer than the max age and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	cutoff := s.now().Add(-s.maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, w := range s.entries {
		if w.lastSeen.Before(cutoff) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartSweeper runs Sweep every interval until ctx is done or Stop is called.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stop:
				return
			case <-ticker.C:
				if n := s.Sweep(); n > 0 {
					logger.Debug("RateLimit:Sweep:Evicted", "entries", n)
				}
			}
		}
	}()
}

func (s *MemoryStore) Stop() {
	s.once.Do(func() { close(s.stop) })
}
