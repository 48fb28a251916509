package validation

import (
	"errors"
)

// ValidatePassword checks only what the hasher needs: a non-empty password
// that fits bcrypt's 72-byte input.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	// bcrypt rejects (older versions silently truncate) anything longer than 72 bytes
	if len(password) > 72 {
		return errors.New("password must not exceed 72 bytes")
	}

	return nil
}
