package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/model"
)

func TestGuard_RequireAuth(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	aliceID := s.register(t, "alice")

	_, err := s.guard.RequireAuth(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	handle, err := s.sessions.Create(ctx, aliceID)
	require.NoError(t, err)

	userID, err := s.guard.RequireAuth(ctx, handle)
	require.NoError(t, err)
	assert.Equal(t, aliceID, userID)
}

func TestAuthorizeOwner(t *testing.T) {
	goal := &model.Goal{ID: "g1", UserID: "alice"}
	achievement := &model.Achievement{ID: "a1", UserID: "bob"}

	assert.NoError(t, AuthorizeOwner(goal, "alice"))
	assert.ErrorIs(t, AuthorizeOwner(goal, "bob"), ErrNotFoundOrForbidden)
	assert.ErrorIs(t, AuthorizeOwner(goal, ""), ErrNotFoundOrForbidden)
	assert.NoError(t, AuthorizeOwner(achievement, "bob"))
	assert.ErrorIs(t, AuthorizeOwner(nil, "alice"), ErrNotFoundOrForbidden)
}
