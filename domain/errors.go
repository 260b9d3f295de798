package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// Bearer token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Single-use token errors
var (
	ErrTokenNotFound    = errors.New("single-use token not found")
	ErrTokenAlreadyUsed = errors.New("single-use token already used")
)

// Password errors
var (
	ErrWeakPassword     = errors.New("password does not meet strength requirements")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// Throttling errors
var (
	ErrRateLimited = errors.New("too many requests")
)
