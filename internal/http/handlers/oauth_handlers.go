package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// OAuthHandlers completes federated login after the provider handshake. The
// authorization-code exchange happens upstream; this endpoint receives the
// verified profile and mints local sessions.
type OAuthHandlers struct {
	resolver domain.IdentityResolver
	tokenSvc domain.TokenService
	audit    domain.AuditPublisher
}

// NewOAuthHandlers creates new OAuth handlers
func NewOAuthHandlers(resolver domain.IdentityResolver, tokenSvc domain.TokenService, audit domain.AuditPublisher) *OAuthHandlers {
	return &OAuthHandlers{
		resolver: resolver,
		tokenSvc: tokenSvc,
		audit:    audit,
	}
}

// OAuthCallbackRequest carries the verified provider profile
type OAuthCallbackRequest struct {
	Provider  string `json:"provider" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Picture   string `json:"picture"`
	Subject   string `json:"sub" binding:"required"`
}

// Callback resolves the external profile to a local user and issues tokens
func (h *OAuthHandlers) Callback(c *gin.Context) {
	var req OAuthCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile := &domain.OAuthProfile{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Picture:   req.Picture,
		Subject:   req.Subject,
	}

	user, err := h.resolver.ResolveOAuthUser(c.Request.Context(), profile, domain.AuthProvider(req.Provider))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve federated identity"})
		return
	}

	accessToken, err := h.tokenSvc.GenerateAccessToken(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}
	refreshToken, err := h.tokenSvc.GenerateRefreshToken(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue tokens"})
		return
	}

	event := &domain.AuditEvent{
		EventType: domain.OAuthLoginEvent,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
	if err := h.audit.Publish(c.Request.Context(), event); err != nil {
		log.Printf("oauth: failed to publish audit event: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"token_type":    "Bearer",
		"user":          userJSON(user),
	})
}
