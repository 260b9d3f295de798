package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/internal/http/handlers"
	"github.com/deva-prakash-j/lurniq-api/internal/http/middleware"
)

// Endpoint classes used as rate-limit keys
const (
	EndpointLogin    = "auth.login"
	EndpointRegister = "auth.register"
	EndpointRecovery = "auth.recovery"
	EndpointOAuth    = "auth.oauth"
)

// BuildRouter assembles the HTTP surface
func BuildRouter(ah *handlers.AuthHandlers, oh *handlers.OAuthHandlers, adm *handlers.AdminHandlers, jwtmw *middleware.AuthMW, rlmw *middleware.RateLimitMW, cb *middleware.CasbinMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/register", rlmw.Limit(EndpointRegister), ah.Register)
	auth.POST("/login", rlmw.Limit(EndpointLogin), ah.Login)
	auth.POST("/refresh", ah.Refresh)
	auth.GET("/activate", ah.Activate)
	auth.POST("/resend-activation", rlmw.Limit(EndpointRecovery), ah.ResendActivation)
	auth.POST("/forgot-password", rlmw.Limit(EndpointRecovery), ah.ForgotPassword)
	auth.GET("/reset-password", ah.VerifyResetToken)
	auth.POST("/reset-password", rlmw.Limit(EndpointRecovery), ah.ResetPassword)
	auth.GET("/password-requirements", ah.PasswordRequirements)
	auth.POST("/oauth/callback", rlmw.Limit(EndpointOAuth), oh.Callback)

	v := r.Group("/").Use(jwtmw.WithJWT())
	v.GET("/auth/me", ah.Me)

	admin := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	admin.POST("/tokens/sweep", adm.SweepTokens)
	admin.GET("/policies", adm.ListPolicies)

	return r
}
