package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
)

func createUser(t *testing.T, database *sqlx.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash12345",
		CreatedAt:    time.Now().UTC(),
	}
	err := repository.NewUserRepository(database).Create(context.Background(), user)
	require.NoError(t, err)
	return user
}
