package services

import "strings"

// Password strength policy applied before any credential write
const (
	PasswordMinLength = 8
	PasswordSpecials  = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// IsStrongPassword reports whether a password meets the policy: at least
// 8 characters with upper, lower, digit and special character.
func IsStrongPassword(password string) bool {
	if len(password) < PasswordMinLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, ch := range password {
		switch {
		case ch >= 'A' && ch <= 'Z':
			hasUpper = true
		case ch >= 'a' && ch <= 'z':
			hasLower = true
		case ch >= '0' && ch <= '9':
			hasDigit = true
		case strings.ContainsRune(PasswordSpecials, ch):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}
