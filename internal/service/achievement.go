package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
)

type AchievementService struct {
	repo repository.AchievementRepository
}

func NewAchievementService(repo repository.AchievementRepository) *AchievementService {
	return &AchievementService{repo: repo}
}

// Create records an achievement. goalID is not checked against the goals
// collection.
func (s *AchievementService) Create(ctx context.Context, userID, goalID, timestamp, details string) (*model.Achievement, error) {
	achievement := &model.Achievement{
		ID:        uuid.New().String(),
		UserID:    userID,
		GoalID:    goalID,
		Timestamp: timestamp,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}

	err := s.repo.Create(ctx, achievement)
	if err != nil {
		return nil, storeError("failed to create achievement", err)
	}

	return achievement, nil
}

func (s *AchievementService) List(ctx context.Context, userID string) ([]*model.Achievement, error) {
	achievements, err := s.repo.Achievements(ctx, userID)
	if err != nil {
		return nil, storeError("failed to list achievements", err)
	}
	return achievements, nil
}

func (s *AchievementService) Count(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUserAchievements(ctx, userID)
	if err != nil {
		return 0, storeError("failed to count achievements", err)
	}
	return count, nil
}
