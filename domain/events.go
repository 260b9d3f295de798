package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	UserRegisteredEvent         AuditEventType = "USER_REGISTERED"
	UserLoginEvent              AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent       AuditEventType = "USER_LOGIN_FAILED"
	TokenRefreshEvent           AuditEventType = "TOKEN_REFRESHED"
	AccountActivatedEvent       AuditEventType = "ACCOUNT_ACTIVATED"
	ActivationResentEvent       AuditEventType = "ACTIVATION_RESENT"
	PasswordResetRequestEvent   AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetCompletedEvent AuditEventType = "PASSWORD_RESET_COMPLETED"
	OAuthLoginEvent             AuditEventType = "OAUTH_LOGIN"
)

// AuditEvent represents a security-relevant event that occurred in the system
type AuditEvent struct {
	ID        string         `json:"id"`
	EventType AuditEventType `json:"event_type"`
	UserID    uint           `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	IPAddress string         `json:"ip_address,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// NewAuditEvent creates an audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError marks the event as failed and records the cause
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}
