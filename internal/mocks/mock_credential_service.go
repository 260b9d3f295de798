package mocks

import (
	"context"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// MockCredentialService implements domain.CredentialService interface for testing
type MockCredentialService struct {
	RegisterFunc             func(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error)
	LoginFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	RefreshFunc              func(ctx context.Context, refreshToken string) (*domain.AuthResult, error)
	ActivateFunc             func(ctx context.Context, secret string) (*domain.User, error)
	ResendActivationFunc     func(ctx context.Context, email string) error
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	VerifyResetTokenFunc     func(ctx context.Context, secret string) (*domain.User, error)
	ResetPasswordFunc        func(ctx context.Context, secret, newPassword, confirmPassword string) error
}

// NewMockCredentialService creates a new MockCredentialService with default behaviors
func NewMockCredentialService() *MockCredentialService {
	return &MockCredentialService{}
}

// Register registers a new account
func (m *MockCredentialService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, firstName, lastName, email, password)
	}
	// Default behavior: echo a minimal user
	return &domain.User{ID: 1, FirstName: firstName, LastName: lastName, Email: email, Role: domain.RoleUser, Provider: domain.ProviderLocal}, nil
}

// Login authenticates with email and password
func (m *MockCredentialService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	// Default behavior: invalid credentials
	return nil, domain.ErrInvalidCredentials
}

// Refresh exchanges a refresh token for a new pair
func (m *MockCredentialService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	// Default behavior: invalid token
	return nil, domain.ErrTokenInvalid
}

// Activate redeems an activation token
func (m *MockCredentialService) Activate(ctx context.Context, secret string) (*domain.User, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, secret)
	}
	// Default behavior: token unknown
	return nil, domain.ErrTokenNotFound
}

// ResendActivation re-sends the activation email
func (m *MockCredentialService) ResendActivation(ctx context.Context, email string) error {
	if m.ResendActivationFunc != nil {
		return m.ResendActivationFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// RequestPasswordReset starts the reset flow
func (m *MockCredentialService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// VerifyResetToken checks a reset token without consuming it
func (m *MockCredentialService) VerifyResetToken(ctx context.Context, secret string) (*domain.User, error) {
	if m.VerifyResetTokenFunc != nil {
		return m.VerifyResetTokenFunc(ctx, secret)
	}
	// Default behavior: token unknown
	return nil, domain.ErrTokenNotFound
}

// ResetPassword completes the reset flow
func (m *MockCredentialService) ResetPassword(ctx context.Context, secret, newPassword, confirmPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, secret, newPassword, confirmPassword)
	}
	// Default behavior: success
	return nil
}
