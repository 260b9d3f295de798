package mocks

import (
	"fmt"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc  func(email string, role domain.Role) (string, error)
	GenerateRefreshTokenFunc func(email string, role domain.Role) (string, error)
	ValidateTokenFunc        func(token string) (*domain.TokenClaims, error)
	ExtractSubjectFunc       func(token string) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(email string, role domain.Role) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(email, role)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_%s_%s", email, role), nil
}

// GenerateRefreshToken generates a refresh token for the user
func (m *MockTokenService) GenerateRefreshToken(email string, role domain.Role) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(email, role)
	}
	// Default behavior: return a mock refresh token
	return fmt.Sprintf("refresh_token_%s_%s", email, role), nil
}

// ValidateToken validates a token and returns its claims
func (m *MockTokenService) ValidateToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(token)
	}
	// Default behavior: valid access token claims
	return &domain.TokenClaims{
		Subject:   "user@example.com",
		Role:      domain.RoleUser,
		Kind:      domain.KindAccess,
		IssuedAt:  time.Now().Add(-time.Minute).Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

// ExtractSubject reads the subject claim without verification
func (m *MockTokenService) ExtractSubject(token string) (string, error) {
	if m.ExtractSubjectFunc != nil {
		return m.ExtractSubjectFunc(token)
	}
	// Default behavior: fixed subject
	return "user@example.com", nil
}
