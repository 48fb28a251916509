package model

import (
	"time"
)

// Achievement is append-only. GoalID is stored as given and never resolved.
type Achievement struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	GoalID    string    `db:"goal_id"`
	Timestamp string    `db:"achieved_at"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}

func (a *Achievement) OwnerID() string {
	return a.UserID
}
