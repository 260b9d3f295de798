package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// AdminHandlers exposes operational endpoints guarded by the admin policy
type AdminHandlers struct {
	tokenStore domain.TokenStore
	policySvc  domain.PolicyService
}

// NewAdminHandlers creates new admin handlers
func NewAdminHandlers(tokenStore domain.TokenStore, policySvc domain.PolicyService) *AdminHandlers {
	return &AdminHandlers{
		tokenStore: tokenStore,
		policySvc:  policySvc,
	}
}

// SweepTokens triggers an immediate expired-token sweep
func (h *AdminHandlers) SweepTokens(c *gin.Context) {
	count, err := h.tokenStore.SweepExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": count})
}

// ListPolicies returns the active authorization policies
func (h *AdminHandlers) ListPolicies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"policies": h.policySvc.GetPolicies()})
}
