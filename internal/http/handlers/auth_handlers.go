package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deva-prakash-j/lurniq-api/domain"
	"github.com/deva-prakash-j/lurniq-api/internal/services"
)

// AuthHandlers maps credential service results onto HTTP responses
type AuthHandlers struct {
	credentialSvc domain.CredentialService
	userRepo      domain.UserRepository
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(credentialSvc domain.CredentialService, userRepo domain.UserRepository) *AuthHandlers {
	return &AuthHandlers{
		credentialSvc: credentialSvc,
		userRepo:      userRepo,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// EmailRequest carries a bare email (resend activation, forgot password)
type EmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest represents the final password reset submission
type ResetPasswordRequest struct {
	Token           string `json:"token" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

func userJSON(u *domain.User) gin.H {
	return gin.H{
		"id":             u.ID,
		"email":          u.Email,
		"first_name":     u.FirstName,
		"last_name":      u.LastName,
		"role":           u.Role,
		"email_verified": u.EmailVerified,
	}
}

func authResultJSON(r *domain.AuthResult) gin.H {
	return gin.H{
		"access_token":  r.AccessToken,
		"refresh_token": r.RefreshToken,
		"token_type":    "Bearer",
		"expires_in":    r.ExpiresIn,
		"user":          userJSON(r.User),
	}
}

// Register handles user registration. No tokens are returned: the account
// stays locked until the activation email is redeemed.
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.credentialSvc.Register(c.Request.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrDuplicateEmail:
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		case domain.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, gin.H{"error": passwordPolicyMessage})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Account created successfully! Please check your email to activate your account.",
		"user":      userJSON(user),
		"next_step": "email_verification",
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.credentialSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case domain.ErrInvalidCredentials:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		case domain.ErrEmailNotVerified:
			c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified. Please check your email and activate your account."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, authResultJSON(result))
}

// Refresh issues a fresh token pair from a valid refresh token
func (h *AuthHandlers) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.credentialSvc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch err {
		case domain.ErrTokenExpired:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		}
		return
	}

	c.JSON(http.StatusOK, authResultJSON(result))
}

// Activate redeems a verification token from the emailed link
func (h *AuthHandlers) Activate(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Activation token is required"})
		return
	}

	user, err := h.credentialSvc.Activate(c.Request.Context(), token)
	if err != nil {
		// Not-found, expired and used all collapse into one message; the
		// endpoint must not act as a token oracle.
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid or expired activation token. Please request a new one.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account activated successfully. You can now log in.",
		"user":    userJSON(user),
	})
}

// ResendActivation re-issues the activation email when allowed. The response
// shape is fixed regardless of account state.
func (h *AuthHandlers) ResendActivation(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.credentialSvc.ResendActivation(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If the account exists and is not yet verified, a new activation email has been sent.",
	})
}

// ForgotPassword starts the reset flow. Unknown emails get the same success
// response; only throttled known accounts observe a 429.
func (h *AuthHandlers) ForgotPassword(c *gin.Context) {
	var req EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.credentialSvc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		if err == domain.ErrRateLimited {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many password reset requests. Please wait before trying again.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account with that email exists, we've sent you a password reset link. Please check your inbox and spam folder.",
	})
}

// VerifyResetToken checks a reset secret without consuming it
func (h *AuthHandlers) VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reset token is required"})
		return
	}

	user, err := h.credentialSvc.VerifyResetToken(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid or expired password reset token. Please request a new one.",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Token is valid. You can now reset your password.",
		"email":      user.Email,
		"first_name": user.FirstName,
	})
}

const passwordPolicyMessage = "Password must be at least 8 characters long and contain uppercase, lowercase, number, and special character."

// ResetPassword completes the reset flow by redeeming the token
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.credentialSvc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch err {
		case domain.ErrPasswordMismatch:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Passwords do not match."})
		case domain.ErrWeakPassword:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": passwordPolicyMessage})
		case domain.ErrTokenNotFound, domain.ErrTokenExpired, domain.ErrTokenAlreadyUsed:
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired reset token. Please request a new password reset."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Your password has been reset successfully. You can now log in with your new password.",
	})
}

// PasswordRequirements publishes the strength policy for client-side hints
func (h *AuthHandlers) PasswordRequirements(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"requirements": gin.H{
			"min_length":           services.PasswordMinLength,
			"require_uppercase":    true,
			"require_lowercase":    true,
			"require_digit":        true,
			"require_special_char": true,
		},
		"message": passwordPolicyMessage,
	})
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c *gin.Context) {
	email, exists := c.Get("user_email")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	user, err := h.userRepo.FindByEmail(c.Request.Context(), email.(string))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userJSON(user)})
}
