package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/templui/healthtrack/internal/model"
)

// AchievementRepository is append-only: there is no update or delete.
type AchievementRepository interface {
	Create(ctx context.Context, achievement *model.Achievement) error
	Achievements(ctx context.Context, userID string) ([]*model.Achievement, error)
	CountUserAchievements(ctx context.Context, userID string) (int, error)
}

type achievementRepository struct {
	db *sqlx.DB
}

func NewAchievementRepository(db *sqlx.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

func (r *achievementRepository) Create(ctx context.Context, achievement *model.Achievement) error {
	query := `INSERT INTO achievements (id, user_id, goal_id, achieved_at, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		achievement.ID,
		achievement.UserID,
		achievement.GoalID,
		achievement.Timestamp,
		achievement.Details,
		achievement.CreatedAt,
	)

	return err
}

func (r *achievementRepository) Achievements(ctx context.Context, userID string) ([]*model.Achievement, error) {
	achievements := []*model.Achievement{}
	query := `SELECT * FROM achievements WHERE user_id = $1 ORDER BY created_at ASC`

	err := r.db.SelectContext(ctx, &achievements, query, userID)
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

func (r *achievementRepository) CountUserAchievements(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM achievements WHERE user_id = $1`, userID)
	return count, err
}
