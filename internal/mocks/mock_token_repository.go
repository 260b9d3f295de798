package mocks

import (
	"context"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// MockSingleUseTokenRepository implements domain.SingleUseTokenRepository interface for testing
type MockSingleUseTokenRepository struct {
	ReplaceFunc        func(ctx context.Context, token *domain.SingleUseToken) error
	FindBySecretFunc   func(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.SingleUseToken, error)
	ConsumeFunc        func(ctx context.Context, secret string, purpose domain.TokenPurpose, now time.Time, effect func(txCtx context.Context, token *domain.SingleUseToken) error) (*domain.SingleUseToken, error)
	HasOutstandingFunc func(ctx context.Context, userID uint, purpose domain.TokenPurpose, now time.Time) (bool, error)
	DeleteExpiredFunc  func(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewMockSingleUseTokenRepository creates a new MockSingleUseTokenRepository with default behaviors
func NewMockSingleUseTokenRepository() *MockSingleUseTokenRepository {
	return &MockSingleUseTokenRepository{}
}

// Replace swaps any outstanding token for the same user and purpose
func (m *MockSingleUseTokenRepository) Replace(ctx context.Context, token *domain.SingleUseToken) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindBySecret looks up a token without mutating it
func (m *MockSingleUseTokenRepository) FindBySecret(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.SingleUseToken, error) {
	if m.FindBySecretFunc != nil {
		return m.FindBySecretFunc(ctx, secret, purpose)
	}
	// Default behavior: not found
	return nil, domain.ErrTokenNotFound
}

// Consume flips the token to used and runs the effect
func (m *MockSingleUseTokenRepository) Consume(ctx context.Context, secret string, purpose domain.TokenPurpose, now time.Time, effect func(txCtx context.Context, token *domain.SingleUseToken) error) (*domain.SingleUseToken, error) {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, secret, purpose, now, effect)
	}
	// Default behavior: not found
	return nil, domain.ErrTokenNotFound
}

// HasOutstanding reports whether a live token exists
func (m *MockSingleUseTokenRepository) HasOutstanding(ctx context.Context, userID uint, purpose domain.TokenPurpose, now time.Time) (bool, error) {
	if m.HasOutstandingFunc != nil {
		return m.HasOutstandingFunc(ctx, userID, purpose, now)
	}
	// Default behavior: nothing outstanding
	return false, nil
}

// DeleteExpired removes tokens expired before cutoff
func (m *MockSingleUseTokenRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, cutoff)
	}
	// Default behavior: nothing deleted
	return 0, nil
}
