package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/db/dbtest"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/repository"
	"github.com/templui/healthtrack/internal/service"
)

func echoUserID(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(ctxkeys.UserID(r.Context())))
}

func TestSessionMiddleware(t *testing.T) {
	database := dbtest.New(t)
	auth := service.NewAuthService(repository.NewUserRepository(database), service.NewPasswordHasher())
	sessions := service.NewSessionService(repository.NewSessionRepository(database), "test-secret", time.Hour, false)
	handler := SessionMiddleware(service.NewGuard(sessions), sessions)(http.HandlerFunc(echoUserID))

	ctx := context.Background()
	userID, err := auth.Register(ctx, "alice", "pw123")
	require.NoError(t, err)
	handle, err := sessions.Create(ctx, userID)
	require.NoError(t, err)

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: handle})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Equal(t, userID, rec.Body.String())
	})

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, rec.Body.String())
	})

	t.Run("invalid cookie is cleared", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: "bogus"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)
		assert.Empty(t, rec.Body.String())

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, service.SessionCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
	})
}

// unreachableSessionRepository accepts new sessions and then fails every lookup.
type unreachableSessionRepository struct {
	repository.SessionRepository
}

func (unreachableSessionRepository) Create(context.Context, *model.Session) error {
	return nil
}

func (unreachableSessionRepository) ByToken(context.Context, string) (*model.Session, error) {
	return nil, errors.New("connection refused")
}

func TestSessionMiddleware_StoreFailure(t *testing.T) {
	sessions := service.NewSessionService(unreachableSessionRepository{}, "test-secret", time.Hour, false)
	reached := false
	handler := SessionMiddleware(service.NewGuard(sessions), sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	handle, err := sessions.Create(context.Background(), "alice-id")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: handle})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, reached)
	assert.Empty(t, rec.Result().Cookies())
	assert.Empty(t, rec.Header().Get("Location"))
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(echoUserID)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, "/login", rec.Header().Get("HX-Redirect"))

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(ctxkeys.WithUserID(req.Context(), "alice-id"))
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice-id", rec.Body.String())
}

func TestRequireGuest(t *testing.T) {
	handler := RequireGuest(echoUserID)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req = req.WithContext(ctxkeys.WithUserID(req.Context(), "alice-id"))
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
