package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/internal/mocks"
)

func runLimit(t *testing.T, limiter *mocks.MockRateLimiter) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/login", nil)

	NewRateLimitMW(limiter).Limit("auth.login")(c)
	return w
}

func TestRateLimitMW_Limit(t *testing.T) {
	t.Run("allowed request passes", func(t *testing.T) {
		w := runLimit(t, mocks.NewMockRateLimiter())
		if w.Code != http.StatusOK {
			t.Fatalf("expected pass-through, got %d", w.Code)
		}
	})

	t.Run("throttled request gets 429 with Retry-After", func(t *testing.T) {
		limiter := mocks.NewMockRateLimiter()
		limiter.AllowFunc = func(ctx context.Context, client, endpoint string) (bool, time.Duration, error) {
			if endpoint != "auth.login" {
				t.Errorf("expected endpoint auth.login, got %s", endpoint)
			}
			return false, time.Minute, nil
		}

		w := runLimit(t, limiter)
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
		if got := w.Header().Get("Retry-After"); got != "60" {
			t.Errorf("expected Retry-After 60, got %q", got)
		}
	})

	t.Run("limiter failure fails open", func(t *testing.T) {
		limiter := mocks.NewMockRateLimiter()
		limiter.AllowFunc = func(ctx context.Context, client, endpoint string) (bool, time.Duration, error) {
			return false, 0, errors.New("store down")
		}

		w := runLimit(t, limiter)
		if w.Code != http.StatusOK {
			t.Fatalf("expected fail-open pass-through, got %d", w.Code)
		}
	})
}
