package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/deva-prakash-j/lurniq-api/domain"
)

// resetRequestEndpoint keys the per-user password-reset throttle
const resetRequestEndpoint = "password-reset"

// AuthServiceImpl implements domain.CredentialService. It is the only
// component touching the external collaborators (user repository, password
// hasher, mailer) and holds no per-request state.
type AuthServiceImpl struct {
	userRepo     domain.UserRepository
	passwordSvc  domain.PasswordService
	tokenSvc     domain.TokenService
	tokenStore   domain.TokenStore
	mailer       domain.MailerService
	audit        domain.AuditPublisher
	resetLimiter domain.RateLimiter
	clock        domain.Clock
	accessTTL    time.Duration
}

// NewAuthService creates a new credential service. resetLimiter throttles
// password-reset requests per user, distinct from the per-client HTTP gate.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	tokenStore domain.TokenStore,
	mailer domain.MailerService,
	audit domain.AuditPublisher,
	resetLimiter domain.RateLimiter,
	clock domain.Clock,
	accessTTL time.Duration,
) domain.CredentialService {
	return &AuthServiceImpl{
		userRepo:     userRepo,
		passwordSvc:  passwordSvc,
		tokenSvc:     tokenSvc,
		tokenStore:   tokenStore,
		mailer:       mailer,
		audit:        audit,
		resetLimiter: resetLimiter,
		clock:        clock,
		accessTTL:    accessTTL,
	}
}

// Register implements domain.CredentialService. The new account starts
// unverified and gets no session tokens; a verification secret goes out by
// email instead.
func (s *AuthServiceImpl) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	if !IsStrongPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:         email,
		PasswordHash:  hashedPassword,
		FirstName:     firstName,
		LastName:      lastName,
		Role:          domain.RoleUser,
		Provider:      domain.ProviderLocal,
		EmailVerified: false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Activation email is best-effort; the account is already persisted and
	// the user can request a resend.
	if err := s.sendActivation(ctx, user); err != nil {
		log.Printf("auth: failed to send activation email to %s: %v", user.Email, err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.UserRegisteredEvent, user.ID).WithEmail(user.Email))
	return user, nil
}

// Login implements domain.CredentialService. "No such user" and "wrong
// password" are indistinguishable to the caller.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.publish(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, 0).WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if user.PasswordHash == "" || !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.publish(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, user.ID).WithEmail(email).WithError(domain.ErrInvalidCredentials))
		return nil, domain.ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return nil, domain.ErrEmailNotVerified
	}

	result, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.UserLoginEvent, user.ID).WithEmail(user.Email))
	return result, nil
}

// Refresh implements domain.CredentialService. A fresh access+refresh pair is
// issued; the presented refresh token is not revoked server-side since no
// token registry exists, it simply ages out at its own expiry.
func (s *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	claims, err := s.tokenSvc.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Kind != domain.KindRefresh {
		return nil, domain.ErrTokenInvalid
	}

	user, err := s.userRepo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, domain.ErrTokenInvalid
	}

	result, err := s.issuePair(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.TokenRefreshEvent, user.ID).WithEmail(user.Email))
	return result, nil
}

// Activate implements domain.CredentialService. The verified flag flips
// inside the redemption transaction; the welcome email is fire-and-forget.
func (s *AuthServiceImpl) Activate(ctx context.Context, secret string) (*domain.User, error) {
	user, err := s.tokenStore.Redeem(ctx, secret, domain.PurposeVerification, func(txCtx context.Context, userID uint) error {
		return s.userRepo.MarkEmailVerified(txCtx, userID)
	})
	if err != nil {
		return nil, err
	}
	user.EmailVerified = true

	if err := s.mailer.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		log.Printf("auth: failed to send welcome email to %s: %v", user.Email, err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.AccountActivatedEvent, user.ID).WithEmail(user.Email))
	return user, nil
}

// ResendActivation implements domain.CredentialService. Unknown, already
// verified, and still-covered accounts all resolve silently so the response
// leaks nothing.
func (s *AuthServiceImpl) ResendActivation(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	if user.EmailVerified {
		return nil
	}

	outstanding, err := s.tokenStore.HasOutstanding(ctx, user, domain.PurposeVerification)
	if err != nil {
		return err
	}
	if outstanding {
		return nil
	}

	if err := s.sendActivation(ctx, user); err != nil {
		return err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.ActivationResentEvent, user.ID).WithEmail(user.Email))
	return nil
}

// RequestPasswordReset implements domain.CredentialService. An unknown email
// resolves silently; a throttled known account surfaces ErrRateLimited, which
// callers may map to a distinct status (documented enumeration asymmetry).
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return nil
		}
		return err
	}

	allowed, _, err := s.resetLimiter.Allow(ctx, strings.ToLower(user.Email), resetRequestEndpoint)
	if err != nil {
		return fmt.Errorf("failed to check reset throttle: %w", err)
	}
	if !allowed {
		return domain.ErrRateLimited
	}

	secret, err := s.tokenStore.Issue(ctx, user, domain.PurposePasswordReset)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetEmail(user.Email, user.FirstName, secret); err != nil {
		log.Printf("auth: failed to send reset email to %s: %v", user.Email, err)
	}

	s.publish(ctx, domain.NewAuditEvent(domain.PasswordResetRequestEvent, user.ID).WithEmail(user.Email))
	return nil
}

// VerifyResetToken implements domain.CredentialService without consuming the
// token; reset forms use it to validate the link before showing the form.
func (s *AuthServiceImpl) VerifyResetToken(ctx context.Context, secret string) (*domain.User, error) {
	return s.tokenStore.Peek(ctx, secret, domain.PurposePasswordReset)
}

// ResetPassword implements domain.CredentialService. Input checks run before
// redemption so a doomed request never burns the token; the password write is
// the redemption's transactional side effect.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, secret, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	if !IsStrongPassword(newPassword) {
		return domain.ErrWeakPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.tokenStore.Redeem(ctx, secret, domain.PurposePasswordReset, func(txCtx context.Context, userID uint) error {
		return s.userRepo.UpdatePassword(txCtx, userID, hashedPassword)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, domain.NewAuditEvent(domain.PasswordResetCompletedEvent, user.ID).WithEmail(user.Email))
	return nil
}

func (s *AuthServiceImpl) issuePair(user *domain.User) (*domain.AuthResult, error) {
	accessToken, err := s.tokenSvc.GenerateAccessToken(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenSvc.GenerateRefreshToken(user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

func (s *AuthServiceImpl) sendActivation(ctx context.Context, user *domain.User) error {
	secret, err := s.tokenStore.Issue(ctx, user, domain.PurposeVerification)
	if err != nil {
		return err
	}
	return s.mailer.SendActivationEmail(user.Email, user.FirstName, secret)
}

// publish forwards an audit event best-effort
func (s *AuthServiceImpl) publish(ctx context.Context, event *domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Publish(ctx, event); err != nil {
		log.Printf("auth: failed to publish audit event %s: %v", event.EventType, err)
	}
}
