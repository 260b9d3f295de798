package mocks

import (
	"context"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// MockTokenStore implements domain.TokenStore interface for testing
type MockTokenStore struct {
	IssueFunc          func(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (string, error)
	RedeemFunc         func(ctx context.Context, secret string, purpose domain.TokenPurpose, effect func(txCtx context.Context, userID uint) error) (*domain.User, error)
	PeekFunc           func(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.User, error)
	HasOutstandingFunc func(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (bool, error)
	SweepExpiredFunc   func(ctx context.Context) (int64, error)
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// Issue mints a single-use token for the user
func (m *MockTokenStore) Issue(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, purpose)
	}
	// Default behavior: fixed secret
	return "mock-secret", nil
}

// Redeem consumes a token and runs the effect
func (m *MockTokenStore) Redeem(ctx context.Context, secret string, purpose domain.TokenPurpose, effect func(txCtx context.Context, userID uint) error) (*domain.User, error) {
	if m.RedeemFunc != nil {
		return m.RedeemFunc(ctx, secret, purpose, effect)
	}
	// Default behavior: token unknown
	return nil, domain.ErrTokenNotFound
}

// Peek checks a token without consuming it
func (m *MockTokenStore) Peek(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.User, error) {
	if m.PeekFunc != nil {
		return m.PeekFunc(ctx, secret, purpose)
	}
	// Default behavior: token unknown
	return nil, domain.ErrTokenNotFound
}

// HasOutstanding reports whether a live token exists for the user and purpose
func (m *MockTokenStore) HasOutstanding(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (bool, error) {
	if m.HasOutstandingFunc != nil {
		return m.HasOutstandingFunc(ctx, user, purpose)
	}
	// Default behavior: nothing outstanding
	return false, nil
}

// SweepExpired removes expired tokens
func (m *MockTokenStore) SweepExpired(ctx context.Context) (int64, error) {
	if m.SweepExpiredFunc != nil {
		return m.SweepExpiredFunc(ctx)
	}
	// Default behavior: nothing swept
	return 0, nil
}
