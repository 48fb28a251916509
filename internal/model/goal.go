package model

import (
	"time"
)

type Goal struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Category    string    `db:"category"`
	Description string    `db:"description"`
	DueDate     string    `db:"due_date"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// GoalFields are the user-editable parts of a goal.
type GoalFields struct {
	Category    string
	Description string
	DueDate     string
}

func (g *Goal) OwnerID() string {
	return g.UserID
}
