package services

import (
	"context"
	"testing"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
	"github.com/deva-prakash-j/lurniq-api/internal/mocks"
)

// createAuthServiceForTest creates a credential service with mock dependencies.
// Pass nil for any collaborator the test does not care about.
func createAuthServiceForTest(t *testing.T,
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	tokenStore domain.TokenStore,
	mailer domain.MailerService,
	resetLimiter domain.RateLimiter) domain.CredentialService {
	t.Helper()

	if userRepo == nil {
		userRepo = mocks.NewMockUserRepository()
	}
	if passwordSvc == nil {
		passwordSvc = mocks.NewMockPasswordService()
	}
	if tokenSvc == nil {
		tokenSvc = mocks.NewMockTokenService()
	}
	if tokenStore == nil {
		tokenStore = mocks.NewMockTokenStore()
	}
	if mailer == nil {
		mailer = mocks.NewMockMailerService()
	}
	if resetLimiter == nil {
		resetLimiter = mocks.NewMockRateLimiter()
	}

	clock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return NewAuthService(userRepo, passwordSvc, tokenSvc, tokenStore, mailer, mocks.NewMockAuditPublisher(), resetLimiter, clock, 24*time.Hour)
}

// createVerifiedUser creates a verified local user entity for testing
func createVerifiedUser(t *testing.T) *domain.User {
	t.Helper()
	return &domain.User{
		ID:            1,
		Email:         "test@example.com",
		PasswordHash:  "hashed:Sup3r$ecret",
		FirstName:     "Test",
		LastName:      "User",
		Role:          domain.RoleUser,
		Provider:      domain.ProviderLocal,
		EmailVerified: true,
	}
}

// createUnverifiedUser creates a user who has not activated the account yet
func createUnverifiedUser(t *testing.T) *domain.User {
	t.Helper()
	u := createVerifiedUser(t)
	u.EmailVerified = false
	return u
}

// createTestContext creates a context for testing
func createTestContext(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
