package service

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is fixed so stored digests stay comparable across deploys.
const PasswordCost = 10

type PasswordHasher struct {
	cost    int
	compare func(digest, plaintext []byte) error
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{
		cost:    PasswordCost,
		compare: bcrypt.CompareHashAndPassword,
	}
}

// Hash returns a salted bcrypt digest of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}
	return string(hashedBytes), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not an
// error; a digest that is not valid bcrypt is.
func (h *PasswordHasher) Verify(plaintext, digest string) (bool, error) {
	err := h.compare([]byte(digest), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", ErrHashing, err)
}
