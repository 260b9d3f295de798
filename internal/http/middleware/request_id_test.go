package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("generates an id when none supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

		RequestID()(c)

		id := w.Header().Get(RequestIDHeader)
		if id == "" {
			t.Fatal("expected a generated request id")
		}
		if ctxID, _ := c.Get("request_id"); ctxID != id {
			t.Errorf("context id %v differs from header %s", ctxID, id)
		}
	})

	t.Run("honors an incoming id", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		c.Request.Header.Set(RequestIDHeader, "upstream-id-42")

		RequestID()(c)

		if got := w.Header().Get(RequestIDHeader); got != "upstream-id-42" {
			t.Errorf("expected the upstream id to survive, got %s", got)
		}
	})
}
