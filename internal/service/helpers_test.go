package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/db/dbtest"
	"github.com/templui/healthtrack/internal/repository"
)

const testSecret = "test-session-secret-that-is-long-enough"

type testServices struct {
	auth         *AuthService
	sessions     *SessionService
	guard        *Guard
	goals        *GoalService
	achievements *AchievementService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	database := dbtest.New(t)
	sessions := NewSessionService(repository.NewSessionRepository(database), testSecret, time.Hour, false)

	return &testServices{
		auth:         NewAuthService(repository.NewUserRepository(database), NewPasswordHasher()),
		sessions:     sessions,
		guard:        NewGuard(sessions),
		goals:        NewGoalService(repository.NewGoalRepository(database)),
		achievements: NewAchievementService(repository.NewAchievementRepository(database)),
	}
}

func (s *testServices) register(t *testing.T, username string) string {
	t.Helper()

	userID, err := s.auth.Register(context.Background(), username, "pw123")
	require.NoError(t, err)
	return userID
}
