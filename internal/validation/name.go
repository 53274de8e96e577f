package validation

import (
	"strings"
)

// ValidateName validates profile name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return invalid("name is required")
	}

	if len(trimmed) > 100 {
		return invalid("name is too long (max 100 characters)")
	}

	return nil
}

// ValidateUsername validates a profile username
func ValidateUsername(username string) error {
	if username == "" {
		return invalid("username is required")
	}

	if len(username) > 50 {
		return invalid("username is too long (max 50 characters)")
	}

	if strings.ContainsAny(username, " \t\r\n") {
		return invalid("username must not contain whitespace")
	}

	return nil
}
