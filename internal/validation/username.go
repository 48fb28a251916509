package validation

import (
	"errors"
	"strings"
	"unicode"
)

const MaxUsernameLength = 64

// ValidateUsername validates a username as submitted. Usernames are stored
// exactly as given, so surrounding whitespace and control characters are rejected
// rather than silently trimmed.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if strings.TrimSpace(username) != username {
		return errors.New("username must not start or end with whitespace")
	}

	if len([]rune(username)) > MaxUsernameLength {
		return errors.New("username is too long (max 64 characters)")
	}

	for _, r := range username {
		if unicode.IsControl(r) {
			return errors.New("username contains invalid characters")
		}
	}

	return nil
}
