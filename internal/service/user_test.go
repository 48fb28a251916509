package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/db/dbtest"
	"github.com/templui/healthtrack/internal/repository"
)

func TestUserService_ByID(t *testing.T) {
	database := dbtest.New(t)
	users := repository.NewUserRepository(database)
	auth := NewAuthService(users, NewPasswordHasher())
	svc := NewUserService(users)
	ctx := context.Background()

	userID, err := auth.Register(ctx, "alice", "pw123")
	require.NoError(t, err)

	user, err := svc.ByID(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.ByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFoundOrForbidden)
}
