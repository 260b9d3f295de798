package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/deva-prakash-j/lurniq-api/domain"
	"github.com/deva-prakash-j/lurniq-api/internal/mocks"
)

func TestOAuthHandlers_Callback(t *testing.T) {
	validBody := OAuthCallbackRequest{
		Provider:  string(domain.ProviderGoogle),
		Email:     "oauth@example.com",
		FirstName: "Grace",
		LastName:  "Hopper",
		Subject:   "google-sub-123",
	}

	t.Run("resolves the profile and issues tokens", func(t *testing.T) {
		audit := mocks.NewMockAuditPublisher()

		h := NewOAuthHandlers(newStubResolver(&domain.User{ID: 11, Email: "oauth@example.com", Role: domain.RoleUser, EmailVerified: true}, nil), mocks.NewMockTokenService(), audit)
		w := performJSON(t, h.Callback, http.MethodPost, "/auth/oauth/callback", validBody)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)
		if body["access_token"] == "" || body["refresh_token"] == "" {
			t.Error("expected a token pair")
		}

		events := audit.Events()
		if len(events) != 1 || events[0].EventType != domain.OAuthLoginEvent {
			t.Errorf("expected one OAUTH_LOGIN event, got %v", events)
		}
	})

	t.Run("missing provider subject rejected by binding", func(t *testing.T) {
		body := validBody
		body.Subject = ""

		h := NewOAuthHandlers(newStubResolver(nil, nil), mocks.NewMockTokenService(), mocks.NewMockAuditPublisher())
		w := performJSON(t, h.Callback, http.MethodPost, "/auth/oauth/callback", body)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("resolver failure maps to 500", func(t *testing.T) {
		h := NewOAuthHandlers(newStubResolver(nil, domain.ErrUserNotFound), mocks.NewMockTokenService(), mocks.NewMockAuditPublisher())
		w := performJSON(t, h.Callback, http.MethodPost, "/auth/oauth/callback", validBody)

		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

type stubResolver struct {
	user *domain.User
	err  error
}

func newStubResolver(user *domain.User, err error) domain.IdentityResolver {
	return &stubResolver{user: user, err: err}
}

func (s *stubResolver) ResolveOAuthUser(ctx context.Context, profile *domain.OAuthProfile, provider domain.AuthProvider) (*domain.User, error) {
	return s.user, s.err
}
