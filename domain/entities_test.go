package domain

import (
	"testing"
	"time"
)

func TestSingleUseToken_Valid(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	used := now.Add(-time.Minute)

	tests := []struct {
		name  string
		token *SingleUseToken
		want  bool
	}{
		{
			name:  "live token",
			token: &SingleUseToken{ExpiresAt: now.Add(time.Hour)},
			want:  true,
		},
		{
			name:  "used token",
			token: &SingleUseToken{Used: true, UsedAt: &used, ExpiresAt: now.Add(time.Hour)},
			want:  false,
		},
		{
			name:  "expired token",
			token: &SingleUseToken{ExpiresAt: now.Add(-time.Minute)},
			want:  false,
		},
		{
			name:  "token expiring exactly now",
			token: &SingleUseToken{ExpiresAt: now},
			want:  false,
		},
		{
			name:  "used and expired",
			token: &SingleUseToken{Used: true, ExpiresAt: now.Add(-time.Minute)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.Valid(now); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewAuditEvent(t *testing.T) {
	event := NewAuditEvent(UserLoginEvent, 7)

	if event.EventType != UserLoginEvent {
		t.Errorf("expected event type %s, got %s", UserLoginEvent, event.EventType)
	}
	if event.UserID != 7 {
		t.Errorf("expected user 7, got %d", event.UserID)
	}
	if !event.Success {
		t.Error("expected a new event to start successful")
	}
	if event.Timestamp.IsZero() {
		t.Error("expected the timestamp to be set")
	}

	event = event.WithEmail("test@example.com").WithError(ErrInvalidCredentials)
	if event.Email != "test@example.com" {
		t.Errorf("expected email to be set, got %s", event.Email)
	}
	if event.Success {
		t.Error("expected WithError to mark the event failed")
	}
	if event.ErrorMsg != ErrInvalidCredentials.Error() {
		t.Errorf("expected the error message recorded, got %s", event.ErrorMsg)
	}
}
