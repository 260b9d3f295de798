package mocks

// MockMailerService implements domain.MailerService interface for testing
type MockMailerService struct {
	SendActivationEmailFunc    func(to, name, secret string) error
	SendPasswordResetEmailFunc func(to, name, secret string) error
	SendWelcomeEmailFunc       func(to, name string) error
}

// NewMockMailerService creates a new MockMailerService with default behaviors
func NewMockMailerService() *MockMailerService {
	return &MockMailerService{}
}

// SendActivationEmail sends an account activation email
func (m *MockMailerService) SendActivationEmail(to, name, secret string) error {
	if m.SendActivationEmailFunc != nil {
		return m.SendActivationEmailFunc(to, name, secret)
	}
	// Default behavior: success
	return nil
}

// SendPasswordResetEmail sends a password reset email
func (m *MockMailerService) SendPasswordResetEmail(to, name, secret string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(to, name, secret)
	}
	// Default behavior: success
	return nil
}

// SendWelcomeEmail sends a welcome email after activation
func (m *MockMailerService) SendWelcomeEmail(to, name string) error {
	if m.SendWelcomeEmailFunc != nil {
		return m.SendWelcomeEmailFunc(to, name)
	}
	// Default behavior: success
	return nil
}
