package service

import (
	"context"
	"errors"

	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{
		userRepository: userRepository,
	}
}

// ByID returns the user without its password hash.
func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, storeError("failed to get user", err)
	}

	user.PasswordHash = ""
	return user, nil
}
