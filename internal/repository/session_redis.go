package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/templui/healthtrack/internal/model"
)

const redisKeyPrefix = "healthtrack"

type redisSessionRepository struct {
	rdb redis.UniversalClient
}

// NewRedisSessionRepository stores sessions as JSON values keyed by token.
// Keys expire with the session, so DeleteExpired has nothing to do.
func NewRedisSessionRepository(rdb redis.UniversalClient) SessionRepository {
	return &redisSessionRepository{rdb: rdb}
}

func (r *redisSessionRepository) key(token string) string {
	return redisKeyPrefix + ":session:" + token
}

func (r *redisSessionRepository) userKey(userID string) string {
	return redisKeyPrefix + ":user_sessions:" + userID
}

func (r *redisSessionRepository) Create(ctx context.Context, session *model.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired at %s", session.ExpiresAt)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	userKey := r.userKey(session.UserID)
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.key(session.Token), data, ttl)
		pipe.SAdd(ctx, userKey, session.Token)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	return err
}

func (r *redisSessionRepository) ByToken(ctx context.Context, token string) (*model.Session, error) {
	data, err := r.rdb.Get(ctx, r.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	session := &model.Session{}
	err = json.Unmarshal(data, session)
	if err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}

	return session, nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, token string) error {
	session, err := r.ByToken(ctx, token)
	if err != nil {
		return err
	}

	var deleted *redis.IntCmd
	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		deleted = pipe.Del(ctx, r.key(token))
		pipe.SRem(ctx, r.userKey(session.UserID), token)
		return nil
	})
	if err != nil {
		return err
	}

	if deleted.Val() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *redisSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	userKey := r.userKey(userID)

	tokens, err := r.rdb.SMembers(ctx, userKey).Result()
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keys = append(keys, r.key(token))
	}

	var deleted int64
	if len(keys) > 0 {
		deleted, err = r.rdb.Del(ctx, keys...).Result()
		if err != nil {
			return 0, err
		}
	}

	err = r.rdb.Del(ctx, userKey).Err()
	if err != nil {
		return deleted, err
	}

	return deleted, nil
}

func (r *redisSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (r *redisSessionRepository) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
