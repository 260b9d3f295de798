package domain

import "time"

// Role is the access level assigned to a user
type Role string

const (
	RoleUser    Role = "USER"
	RoleAdmin   Role = "ADMIN"
	RoleCreator Role = "CREATOR"
)

// AuthProvider identifies where a user's credentials live
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// TokenPurpose tags a single-use token with the action it grants
type TokenPurpose string

const (
	PurposeVerification  TokenPurpose = "VERIFICATION"
	PurposePasswordReset TokenPurpose = "PASSWORD_RESET"
)

// TokenKind distinguishes access from refresh bearer tokens
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// User represents an identity record in the system
type User struct {
	ID             uint
	Email          string
	PasswordHash   string // empty for OAuth-only accounts
	FirstName      string
	LastName       string
	ProfilePicture string
	Role           Role
	Provider       AuthProvider
	ProviderID     string
	EmailVerified  bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SingleUseToken is one outstanding grant to perform a sensitive action.
// Valid iff !Used && now < ExpiresAt; Used is terminal.
type SingleUseToken struct {
	ID        uint
	Secret    string
	Purpose   TokenPurpose
	UserID    uint
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time
}

// Valid reports whether the token can still be redeemed at the given time
func (t *SingleUseToken) Valid(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}

// TokenClaims represents the parsed claims of a bearer token
type TokenClaims struct {
	Subject   string    `json:"sub"`
	Role      Role      `json:"role"`
	Kind      TokenKind `json:"kind"`
	IssuedAt  int64     `json:"iat"`
	ExpiresAt int64     `json:"exp"`
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// OAuthProfile carries the already-verified attributes handed over by an
// OAuth2 provider once the authorization-code exchange has completed.
type OAuthProfile struct {
	Email     string
	FirstName string
	LastName  string
	Picture   string
	Subject   string
}
