package mocks

import (
	"context"
	"time"
)

// MockRateLimiter implements domain.RateLimiter interface for testing
type MockRateLimiter struct {
	AllowFunc func(ctx context.Context, client, endpoint string) (bool, time.Duration, error)
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Allow reports whether the request is within the limit
func (m *MockRateLimiter) Allow(ctx context.Context, client, endpoint string) (bool, time.Duration, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, client, endpoint)
	}
	// Default behavior: always allowed
	return true, 0, nil
}

// MockCounterStore implements domain.CounterStore interface for testing
type MockCounterStore struct {
	IncrFunc func(ctx context.Context, key string, window time.Duration) (int64, error)
}

// NewMockCounterStore creates a new MockCounterStore with default behaviors
func NewMockCounterStore() *MockCounterStore {
	return &MockCounterStore{}
}

// Incr bumps the counter for key
func (m *MockCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if m.IncrFunc != nil {
		return m.IncrFunc(ctx, key, window)
	}
	// Default behavior: first hit in the window
	return 1, nil
}
