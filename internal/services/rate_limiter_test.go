package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/deva-prakash-j/lurniq-api/internal/mocks"
)

func TestFixedWindowRateLimiter_Ceiling(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryCounterStore(clock, 0)
	limiter := NewFixedWindowRateLimiter(store, time.Minute, map[string]int{"auth.login": 5}, 60)

	ctx := context.Background()
	for i := 1; i <= 5; i++ {
		allowed, _, err := limiter.Allow(ctx, "10.0.0.1", "auth.login")
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}

	allowed, retryAfter, err := limiter.Allow(ctx, "10.0.0.1", "auth.login")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if allowed {
		t.Error("sixth request within the window should be rejected")
	}
	if retryAfter != time.Minute {
		t.Errorf("expected retry-after %v, got %v", time.Minute, retryAfter)
	}
}

func TestFixedWindowRateLimiter_WindowRollover(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryCounterStore(clock, 0)
	limiter := NewFixedWindowRateLimiter(store, time.Minute, nil, 5)

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		limiter.Allow(ctx, "10.0.0.1", "auth.login")
	}
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1", "auth.login"); allowed {
		t.Fatal("expected rejection at the ceiling")
	}

	clock.Advance(time.Minute)

	allowed, _, err := limiter.Allow(ctx, "10.0.0.1", "auth.login")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !allowed {
		t.Error("expected a fresh window after the rollover")
	}
}

func TestFixedWindowRateLimiter_KeysAreIndependent(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryCounterStore(clock, 0)
	limiter := NewFixedWindowRateLimiter(store, time.Minute, map[string]int{"auth.login": 1}, 60)

	ctx := context.Background()
	limiter.Allow(ctx, "10.0.0.1", "auth.login")
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1", "auth.login"); allowed {
		t.Fatal("expected first client to be throttled")
	}

	// a different client and a different endpoint both stay unaffected
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.2", "auth.login"); !allowed {
		t.Error("expected other client to pass")
	}
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1", "auth.register"); !allowed {
		t.Error("expected other endpoint to pass")
	}
}

func TestFixedWindowRateLimiter_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("store down")
	store := mocks.NewMockCounterStore()
	store.IncrFunc = func(ctx context.Context, key string, window time.Duration) (int64, error) {
		return 0, boom
	}
	limiter := NewFixedWindowRateLimiter(store, time.Minute, nil, 5)

	_, _, err := limiter.Allow(context.Background(), "10.0.0.1", "auth.login")
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestMemoryCounterStore_Eviction(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryCounterStore(clock, 10*time.Minute)

	ctx := context.Background()
	for i := 0; i < 50; i++ {
		store.Incr(ctx, fmt.Sprintf("client-%d:auth.login", i), time.Minute)
	}
	if store.Len() != 50 {
		t.Fatalf("expected 50 live entries, got %d", store.Len())
	}

	// all entries idle past the TTL; the next Incr triggers a scan
	clock.Advance(11 * time.Minute)
	store.Incr(ctx, "fresh:auth.login", time.Minute)

	if store.Len() != 1 {
		t.Errorf("expected only the fresh entry to survive, got %d", store.Len())
	}
}

func TestMemoryCounterStore_ConcurrentIncr(t *testing.T) {
	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	store := NewMemoryCounterStore(clock, 0)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			store.Incr(context.Background(), "shared:auth.login", time.Minute)
		}()
	}
	wg.Wait()

	count, err := store.Incr(context.Background(), "shared:auth.login", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != workers+1 {
		t.Errorf("expected count %d, got %d", workers+1, count)
	}
}

func TestRedisCounterStore_Incr(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisCounterStore(client)
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, err := store.Incr(ctx, "10.0.0.1:auth.login", time.Minute)
		if err != nil {
			t.Fatalf("incr %d: %v", i, err)
		}
		if count != i {
			t.Errorf("expected count %d, got %d", i, count)
		}
	}

	// the window expiry is set on first increment only
	if ttl := mr.TTL("ratelimit:10.0.0.1:auth.login"); ttl != time.Minute {
		t.Errorf("expected key TTL %v, got %v", time.Minute, ttl)
	}

	mr.FastForward(time.Minute + time.Second)

	count, err := store.Incr(ctx, "10.0.0.1:auth.login", time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected a fresh counter after expiry, got %d", count)
	}
}

func TestRedisCounterStore_BacksFixedWindowLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limiter := NewFixedWindowRateLimiter(NewRedisCounterStore(client), time.Minute, map[string]int{"auth.login": 2}, 60)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if allowed, _, err := limiter.Allow(ctx, "10.0.0.1", "auth.login"); err != nil || !allowed {
			t.Fatalf("request %d: allowed=%v err=%v", i+1, allowed, err)
		}
	}
	if allowed, _, _ := limiter.Allow(ctx, "10.0.0.1", "auth.login"); allowed {
		t.Error("expected rejection over the ceiling")
	}
}
