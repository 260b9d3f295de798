package mocks

import (
	"sync"
	"time"
)

// MockClock implements domain.Clock interface for testing. The reported time
// is fixed until Advance or Set moves it.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockClock creates a MockClock pinned to the given instant
func NewMockClock(now time.Time) *MockClock {
	return &MockClock{now: now}
}

// Now returns the pinned time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the pinned time forward
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Set pins the time to a new instant
func (m *MockClock) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}
