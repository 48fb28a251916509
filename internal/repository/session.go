package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/healthtrack/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository persists server-side sessions. ByToken reports expired
// sessions as ErrSessionNotFound.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	ByToken(ctx context.Context, token string) (*model.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteExpired(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *model.Session) error {
	query := `INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, session.Token, session.UserID, session.CreatedAt.UTC(), session.ExpiresAt.UTC())
	return err
}

func (r *sessionRepository) ByToken(ctx context.Context, token string) (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT token, user_id, created_at, expires_at FROM sessions WHERE token = $1`

	err := r.db.GetContext(ctx, session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`

	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DeleteExpired removes sessions past their expiry. Times are stored in UTC
// so the comparison holds for text-encoded SQLite timestamps too.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < $1`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *sessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
