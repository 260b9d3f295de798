package mocks

import (
	"context"
	"sync"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// MockAuditPublisher implements domain.AuditPublisher interface for testing.
// Published events are recorded and can be inspected via Events().
type MockAuditPublisher struct {
	PublishFunc func(ctx context.Context, event *domain.AuditEvent) error
	CloseFunc   func() error

	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditPublisher creates a new MockAuditPublisher with default behaviors
func NewMockAuditPublisher() *MockAuditPublisher {
	return &MockAuditPublisher{}
}

// Publish records the event
func (m *MockAuditPublisher) Publish(ctx context.Context, event *domain.AuditEvent) error {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event)
	}
	// Default behavior: success
	return nil
}

// Close closes the publisher
func (m *MockAuditPublisher) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Events returns a copy of everything published so far
func (m *MockAuditPublisher) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}
