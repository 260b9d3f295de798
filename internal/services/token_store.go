package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

const secretBytes = 32 // 256 bits of entropy

// SingleUseTokenService implements domain.TokenStore. Secrets are opaque
// 256-bit CSPRNG values; all lifecycle invariants (one outstanding token per
// purpose, redeem exactly once) are enforced by the repository transactions.
type SingleUseTokenService struct {
	tokenRepo domain.SingleUseTokenRepository
	userRepo  domain.UserRepository
	clock     domain.Clock
	config    TokenStoreConfig
}

// TokenStoreConfig holds per-purpose TTLs and sweep settings
type TokenStoreConfig struct {
	VerificationTTL time.Duration
	ResetTTL        time.Duration
	SweepGrace      time.Duration
}

// NewSingleUseTokenService creates a new single-use token service
func NewSingleUseTokenService(tokenRepo domain.SingleUseTokenRepository, userRepo domain.UserRepository, clock domain.Clock, config TokenStoreConfig) domain.TokenStore {
	return &SingleUseTokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		clock:     clock,
		config:    config,
	}
}

// Issue implements domain.TokenStore. Any prior outstanding token of the same
// purpose is invalidated; the returned secret is handed to the caller for
// out-of-band delivery and never logged in full.
func (s *SingleUseTokenService) Issue(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (string, error) {
	secret, err := generateSecret()
	if err != nil {
		return "", fmt.Errorf("failed to generate token secret: %w", err)
	}

	now := s.clock.Now()
	token := &domain.SingleUseToken{
		Secret:    secret,
		Purpose:   purpose,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl(purpose)),
	}

	if err := s.tokenRepo.Replace(ctx, token); err != nil {
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return secret, nil
}

// Redeem implements domain.TokenStore. The effect runs inside the same
// transaction that flips the used flag, so the state change it applies
// happens at most once even under concurrent redemption attempts.
func (s *SingleUseTokenService) Redeem(ctx context.Context, secret string, purpose domain.TokenPurpose, effect func(txCtx context.Context, userID uint) error) (*domain.User, error) {
	var wrapped func(context.Context, *domain.SingleUseToken) error
	if effect != nil {
		wrapped = func(txCtx context.Context, token *domain.SingleUseToken) error {
			return effect(txCtx, token.UserID)
		}
	}

	token, err := s.tokenRepo.Consume(ctx, secret, purpose, s.clock.Now(), wrapped)
	if err != nil {
		return nil, err
	}

	return s.userRepo.FindByID(ctx, token.UserID)
}

// Peek implements domain.TokenStore. Read-only validity check: the token
// stays redeemable afterwards.
func (s *SingleUseTokenService) Peek(ctx context.Context, secret string, purpose domain.TokenPurpose) (*domain.User, error) {
	token, err := s.tokenRepo.FindBySecret(ctx, secret, purpose)
	if err != nil {
		return nil, err
	}

	if token.Used {
		return nil, domain.ErrTokenAlreadyUsed
	}
	if !s.clock.Now().Before(token.ExpiresAt) {
		return nil, domain.ErrTokenExpired
	}

	return s.userRepo.FindByID(ctx, token.UserID)
}

// HasOutstanding implements domain.TokenStore
func (s *SingleUseTokenService) HasOutstanding(ctx context.Context, user *domain.User, purpose domain.TokenPurpose) (bool, error) {
	return s.tokenRepo.HasOutstanding(ctx, user.ID, purpose, s.clock.Now())
}

// SweepExpired implements domain.TokenStore. Deletes tokens whose expiry
// passed the grace window; safe to run concurrently with live traffic since
// such tokens can no longer be redeemed.
func (s *SingleUseTokenService) SweepExpired(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.config.SweepGrace)
	return s.tokenRepo.DeleteExpired(ctx, cutoff)
}

func (s *SingleUseTokenService) ttl(purpose domain.TokenPurpose) time.Duration {
	if purpose == domain.PurposePasswordReset {
		return s.config.ResetTTL
	}
	return s.config.VerificationTTL
}

// generateSecret produces a URL-safe base64 secret without padding
func generateSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
