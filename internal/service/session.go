package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
)

const SessionCookieName = "session"

// SessionService issues server-side sessions. The session token lives in the
// store; the client holds a signed handle naming that token and its user.
type SessionService struct {
	repo         repository.SessionRepository
	secret       []byte
	ttl          time.Duration
	isProduction bool
	now          func() time.Time
}

func NewSessionService(repo repository.SessionRepository, secret string, ttl time.Duration, isProduction bool) *SessionService {
	return &SessionService{
		repo:         repo,
		secret:       []byte(secret),
		ttl:          ttl,
		isProduction: isProduction,
		now:          time.Now,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create starts a session for userID and returns its signed handle.
func (s *SessionService) Create(ctx context.Context, userID string) (string, error) {
	token, err := GenerateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now().UTC()
	session := &model.Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	err = s.repo.Create(ctx, session)
	if err != nil {
		return "", storeError("failed to create session", err)
	}

	handle, err := s.sign(session)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}

	return handle, nil
}

// CurrentUser resolves a handle to the user id of a live session.
func (s *SessionService) CurrentUser(ctx context.Context, handle string) (string, error) {
	if handle == "" {
		return "", ErrUnauthenticated
	}

	token, userID, err := s.verify(handle)
	if err != nil {
		return "", ErrUnauthenticated
	}

	session, err := s.repo.ByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return "", ErrUnauthenticated
		}
		return "", storeError("failed to get session", err)
	}

	if session.UserID != userID {
		slog.Warn("session handle does not match stored session", "session_user_id", session.UserID)
		return "", ErrUnauthenticated
	}

	return session.UserID, nil
}

// Destroy removes the session behind handle. ErrSessionNotFound means there
// was nothing to remove; callers treat it as success.
func (s *SessionService) Destroy(ctx context.Context, handle string) error {
	if handle == "" {
		return ErrSessionNotFound
	}

	token, _, err := s.verify(handle)
	if err != nil {
		return ErrSessionNotFound
	}

	err = s.repo.Delete(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return storeError("failed to delete session", err)
	}

	return nil
}

// RevokeUser ends every session belonging to userID.
func (s *SessionService) RevokeUser(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, storeError("failed to revoke sessions", err)
	}
	return n, nil
}

func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteExpired(ctx)
	if err != nil {
		return 0, storeError("failed to purge sessions", err)
	}
	return n, nil
}

func (s *SessionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *SessionService) SetCookie(w http.ResponseWriter, handle string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    handle,
		Expires:  s.now().Add(s.ttl),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) sign(session *model.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid": session.Token,
		"sub": session.UserID,
		"iat": session.CreatedAt.Unix(),
		"exp": session.ExpiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *SessionService) verify(handle string) (token, userID string, err error) {
	parsed, err := jwt.Parse(handle, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", "", err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", "", errors.New("invalid session handle")
	}

	token, _ = claims["sid"].(string)
	userID, err = claims.GetSubject()
	if err != nil {
		return "", "", err
	}
	if token == "" || userID == "" {
		return "", "", errors.New("incomplete session handle")
	}

	return token, userID, nil
}

// GenerateToken returns 32 random bytes, hex encoded.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
