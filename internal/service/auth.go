package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
	"github.com/templui/healthtrack/internal/validation"
)

// AuthService is the credential store: it registers users and checks their passwords.
type AuthService struct {
	userRepository repository.UserRepository
	hasher         *PasswordHasher

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(userRepository repository.UserRepository, hasher *PasswordHasher) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
	}
}

// Register creates a user and returns its id.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	err := validation.ValidateUsername(username)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = validation.ValidatePassword(password)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	count, err := s.userRepository.CountByUsername(ctx, username)
	if err != nil {
		return "", storeError("failed to check username", err)
	}
	if count > 0 {
		return "", ErrDuplicateUser
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		// A concurrent registration can pass the pre-check and lose on the constraint.
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return "", ErrDuplicateUser
		}
		return "", storeError("failed to create user", err)
	}

	slog.Info("user registered", "user_id", user.ID, "username", username)
	return user.ID, nil
}

// Authenticate returns the id of the user with matching credentials. An
// unknown username and a wrong password are the same error, and unknown
// usernames still pay for one bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepository.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.burnComparison(password)
			return "", ErrInvalidCredentials
		}
		return "", storeError("failed to get user", err)
	}

	if validation.ValidatePassword(password) != nil {
		s.burnComparison("")
		return "", ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return "", ErrInvalidCredentials
	}

	return user.ID, nil
}

func (s *AuthService) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("healthtrack-timing-equalizer")
		if err != nil {
			slog.Error("failed to build dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})

	if s.dummyHash == "" {
		return
	}
	// Overlong input still pays for a comparison, like a known user does.
	if validation.ValidatePassword(password) != nil {
		password = ""
	}
	_, _ = s.hasher.Verify(password, s.dummyHash)
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
