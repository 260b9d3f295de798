package domain

import (
	"context"
	"time"
)

// Clock supplies the current time. Injected wherever expiry is computed so
// tests can run against a fixed or advancing fake.
type Clock interface {
	Now() time.Time
}

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByProvider(ctx context.Context, provider AuthProvider, providerID string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
}

// SingleUseTokenRepository defines persistence for single-use tokens.
// Replace and Consume carry the transactional guarantees the lifecycle
// depends on: at most one unused unexpired token per (user, purpose), and
// exactly one successful redemption per secret.
type SingleUseTokenRepository interface {
	// Replace deletes any outstanding tokens of the same purpose for the
	// owning user and inserts the given token, all in one transaction.
	Replace(ctx context.Context, token *SingleUseToken) error

	// FindBySecret looks up a token without mutating it.
	FindBySecret(ctx context.Context, secret string, purpose TokenPurpose) (*SingleUseToken, error)

	// Consume atomically flips the token to used and runs effect inside the
	// same transaction. When two callers race on one secret, exactly one
	// effect runs; the loser gets ErrTokenAlreadyUsed.
	Consume(ctx context.Context, secret string, purpose TokenPurpose, now time.Time, effect func(txCtx context.Context, token *SingleUseToken) error) (*SingleUseToken, error)

	HasOutstanding(ctx context.Context, userID uint, purpose TokenPurpose, now time.Time) (bool, error)
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// TokenService defines bearer token operations
type TokenService interface {
	GenerateAccessToken(email string, role Role) (string, error)
	GenerateRefreshToken(email string, role Role) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
	// ExtractSubject reads the subject claim without verifying the
	// signature. Never treat the result as authenticated.
	ExtractSubject(token string) (string, error)
}

// PasswordService defines one-way password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenStore manages the single-use token lifecycle
type TokenStore interface {
	Issue(ctx context.Context, user *User, purpose TokenPurpose) (string, error)
	Redeem(ctx context.Context, secret string, purpose TokenPurpose, effect func(txCtx context.Context, userID uint) error) (*User, error)
	Peek(ctx context.Context, secret string, purpose TokenPurpose) (*User, error)
	HasOutstanding(ctx context.Context, user *User, purpose TokenPurpose) (bool, error)
	SweepExpired(ctx context.Context) (int64, error)
}

// RateLimiter throttles request volume per (client, endpoint) key. Allow is
// synchronous and never blocks; retryAfter is a hint for the caller.
type RateLimiter interface {
	Allow(ctx context.Context, client, endpoint string) (allowed bool, retryAfter time.Duration, err error)
}

// CounterStore is the backing state of a RateLimiter. Incr bumps the counter
// for key within the current fixed window and returns the new count.
type CounterStore interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// MailerService dispatches transactional email. Implementations are
// asynchronous and best-effort; failures are logged, never fatal.
type MailerService interface {
	SendActivationEmail(to, name, secret string) error
	SendPasswordResetEmail(to, name, secret string) error
	SendWelcomeEmail(to, name string) error
}

// IdentityResolver links verified external profiles to local user records
type IdentityResolver interface {
	ResolveOAuthUser(ctx context.Context, profile *OAuthProfile, provider AuthProvider) (*User, error)
}

// CredentialService orchestrates the credential and token lifecycle
type CredentialService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Activate(ctx context.Context, secret string) (*User, error)
	ResendActivation(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetToken(ctx context.Context, secret string) (*User, error)
	ResetPassword(ctx context.Context, secret, newPassword, confirmPassword string) error
}

// AuditPublisher records security-relevant events. Best-effort; callers must
// not fail their operation when publishing fails.
type AuditPublisher interface {
	Publish(ctx context.Context, event *AuditEvent) error
	Close() error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}
