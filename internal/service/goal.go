package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
)

type GoalService struct {
	repo repository.GoalRepository
}

func NewGoalService(repo repository.GoalRepository) *GoalService {
	return &GoalService{repo: repo}
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*model.Goal, error) {
	goals, err := s.repo.Goals(ctx, userID)
	if err != nil {
		return nil, storeError("failed to list goals", err)
	}
	return goals, nil
}

// Create stores the fields as given. Category, description and due date are
// free text.
func (s *GoalService) Create(ctx context.Context, userID, category, description, dueDate string) (*model.Goal, error) {
	now := time.Now().UTC()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Category:    category,
		Description: description,
		DueDate:     dueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.repo.Create(ctx, goal)
	if err != nil {
		return nil, storeError("failed to create goal", err)
	}

	return goal, nil
}

func (s *GoalService) ByID(ctx context.Context, goalID, userID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(ctx, userID, goalID)
	if err != nil {
		return nil, mapGoalError("failed to get goal", err)
	}

	err = AuthorizeOwner(goal, userID)
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (s *GoalService) Count(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUserGoals(ctx, userID)
	if err != nil {
		return 0, storeError("failed to count goals", err)
	}
	return count, nil
}

// Update replaces the editable fields of a goal owned by userID.
func (s *GoalService) Update(ctx context.Context, goalID, userID string, fields model.GoalFields) error {
	err := s.repo.Update(ctx, userID, goalID, fields)
	if err != nil {
		return mapGoalError("failed to update goal", err)
	}
	return nil
}

func (s *GoalService) Delete(ctx context.Context, goalID, userID string) error {
	err := s.repo.Delete(ctx, userID, goalID)
	if err != nil {
		return mapGoalError("failed to delete goal", err)
	}
	return nil
}

func mapGoalError(op string, err error) error {
	if errors.Is(err, repository.ErrGoalNotFound) {
		return ErrNotFoundOrForbidden
	}
	return storeError(op, err)
}
