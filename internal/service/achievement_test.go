package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementService_CreateAndList(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	aliceID := s.register(t, "alice")
	bobID := s.register(t, "bob")

	goal, err := s.goals.Create(ctx, aliceID, "fitness", "run 5k", "2024-01-01")
	require.NoError(t, err)

	achievement, err := s.achievements.Create(ctx, aliceID, goal.ID, "2024-01-01T08:00", "finished in 28 minutes")
	require.NoError(t, err)
	assert.Equal(t, aliceID, achievement.UserID)

	list, err := s.achievements.List(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, goal.ID, list[0].GoalID)
	assert.Equal(t, "finished in 28 minutes", list[0].Details)

	list, err = s.achievements.List(ctx, bobID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestAchievementService_GoalIDIsNotResolved(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	aliceID := s.register(t, "alice")

	_, err := s.achievements.Create(ctx, aliceID, "no-such-goal", "", "")
	require.NoError(t, err)

	count, err := s.achievements.Count(ctx, aliceID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
