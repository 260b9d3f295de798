package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// RateLimitMW gates authentication endpoints per client IP. The endpoint
// class picks the ceiling; auth endpoints use the stricter one.
type RateLimitMW struct {
	limiter domain.RateLimiter
}

// NewRateLimitMW creates the rate limiting middleware
func NewRateLimitMW(limiter domain.RateLimiter) *RateLimitMW {
	return &RateLimitMW{limiter: limiter}
}

// Limit throttles requests for the given endpoint class. gin's ClientIP
// honors X-Forwarded-For and X-Real-IP, matching proxy deployments.
func (m *RateLimitMW) Limit(endpoint string) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := m.limiter.Allow(c.Request.Context(), c.ClientIP(), endpoint)
		if err != nil {
			// Limiter trouble must not take down authentication itself
			c.Next()
			return
		}

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "Rate limit exceeded",
				"message": "Too many authentication attempts. Please try again later.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
