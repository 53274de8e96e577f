package validation

import (
	"strings"
)

var (
	ErrPasswordTooShort  = invalid("password must be at least 8 characters")
	ErrPasswordTooLong   = invalid("password must not exceed 72 characters")
	ErrPasswordTooCommon = invalid("password is too common, please choose a stronger one")
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 8

// ValidatePassword validates password strength and blocks common patterns
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	// Maximum length: 72 bytes (bcrypt limitation)
	// bcrypt silently truncates passwords longer than 72 bytes, which is a security risk
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	// Check for common/weak patterns
	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return ErrPasswordTooCommon
		}
	}

	return nil
}
