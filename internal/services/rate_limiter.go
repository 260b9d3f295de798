package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// FixedWindowRateLimiter implements domain.RateLimiter with fixed-window
// counting: the counter resets when the window elapses, which tolerates a
// burst across a window boundary. Counter state lives behind a CounterStore
// so single-instance deployments use memory and multi-instance ones Redis
// without changing call sites.
type FixedWindowRateLimiter struct {
	store  domain.CounterStore
	window time.Duration
	limits map[string]int
	def    int
}

// NewFixedWindowRateLimiter creates a rate limiter. limits maps an endpoint
// class to its ceiling; endpoints not listed use the default.
func NewFixedWindowRateLimiter(store domain.CounterStore, window time.Duration, limits map[string]int, defaultLimit int) domain.RateLimiter {
	return &FixedWindowRateLimiter{
		store:  store,
		window: window,
		limits: limits,
		def:    defaultLimit,
	}
}

// Allow implements domain.RateLimiter. Over-counting under races is
// acceptable; under-counting is not, so the increment is atomic in the store.
func (l *FixedWindowRateLimiter) Allow(ctx context.Context, client, endpoint string) (bool, time.Duration, error) {
	key := fmt.Sprintf("%s:%s", client, endpoint)

	count, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		return false, 0, err
	}

	limit := l.def
	if v, ok := l.limits[endpoint]; ok {
		limit = v
	}

	if count > int64(limit) {
		return false, l.window, nil
	}
	return true, 0, nil
}

// memoryCounter is one fixed-window counter entry
type memoryCounter struct {
	count       int64
	windowStart time.Time
}

// MemoryCounterStore implements domain.CounterStore with an in-process map.
// Best-effort: a restart clears all counters, and absence of an entry means
// count zero, so eviction never affects correctness.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
	clock    domain.Clock
	idleTTL  time.Duration
	lastScan time.Time
}

// NewMemoryCounterStore creates an in-memory counter store. Entries untouched
// for idleTTL are evicted opportunistically during Incr calls.
func NewMemoryCounterStore(clock domain.Clock, idleTTL time.Duration) *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*memoryCounter),
		clock:    clock,
		idleTTL:  idleTTL,
	}
}

// Incr implements domain.CounterStore
func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeEvict(now, window)

	c, ok := s.counters[key]
	if !ok || now.Sub(c.windowStart) >= window {
		c = &memoryCounter{windowStart: now}
		s.counters[key] = c
	}
	c.count++
	return c.count, nil
}

// Len reports the number of live entries; used by eviction tests
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.counters)
}

// maybeEvict drops entries idle for longer than idleTTL. Runs at most once
// per idleTTL to keep Incr cheap. Caller holds the lock.
func (s *MemoryCounterStore) maybeEvict(now time.Time, window time.Duration) {
	if s.idleTTL <= 0 || now.Sub(s.lastScan) < s.idleTTL {
		return
	}
	s.lastScan = now

	for key, c := range s.counters {
		if now.Sub(c.windowStart) > s.idleTTL && now.Sub(c.windowStart) > window {
			delete(s.counters, key)
		}
	}
}
