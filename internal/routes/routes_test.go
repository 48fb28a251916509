package routes_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/healthtrack/internal/app"
	"github.com/templui/healthtrack/internal/config"
	"github.com/templui/healthtrack/internal/db/dbtest"
	"github.com/templui/healthtrack/internal/repository"
	"github.com/templui/healthtrack/internal/routes"
	"github.com/templui/healthtrack/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		AppName:               "HealthTrack",
		AppEnv:                "test",
		ContentPath:           t.TempDir(),
		SessionSecret:         "routes-test-secret-routes-test-secret",
		SessionTTL:            time.Hour,
		SessionStore:          config.SessionStoreSQL,
		RateLimitAuthRequests: 100,
		RateLimitAuthWindow:   time.Minute,
	}
}

func newServer(t *testing.T, cfg *config.Config, redisSessions bool) (*httptest.Server, *app.App) {
	t.Helper()

	database := dbtest.New(t)
	sessions := repository.NewSessionRepository(database)
	if redisSessions {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = rdb.Close() })
		sessions = repository.NewRedisSessionRepository(rdb)
	}

	a := app.Build(cfg, database, sessions)
	srv := httptest.NewServer(routes.SetupRoutes(a))
	t.Cleanup(srv.Close)

	return srv, a
}

// browser keeps cookies like a real browser but never follows redirects.
type browser struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newBrowser(t *testing.T, srv *httptest.Server) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (b *browser) cookie(name string) string {
	u, err := url.Parse(b.srv.URL)
	require.NoError(b.t, err)

	for _, c := range b.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

func (b *browser) csrf() string {
	if token := b.cookie("csrf_token"); token != "" {
		return token
	}
	b.get("/")
	token := b.cookie("csrf_token")
	require.NotEmpty(b.t, token)
	return token
}

func (b *browser) get(path string) (*http.Response, string) {
	return b.do(http.MethodGet, path, nil, nil)
}

func (b *browser) send(method, path string, form url.Values) (*http.Response, string) {
	return b.do(method, path, form, map[string]string{"X-CSRF-Token": b.csrf()})
}

func (b *browser) do(method, path string, form url.Values, headers map[string]string) (*http.Response, string) {
	b.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(method, b.srv.URL+path, body)
	require.NoError(b.t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)

	return resp, string(data)
}

func (b *browser) registerAndLogin(username, password string) {
	b.t.Helper()

	creds := url.Values{"username": {username}, "password": {password}}

	resp, _ := b.send(http.MethodPost, "/register", creds)
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)

	resp, _ = b.send(http.MethodPost, "/login", creds)
	require.Equal(b.t, http.StatusSeeOther, resp.StatusCode)
	require.NotEmpty(b.t, b.cookie(service.SessionCookieName))
}

func TestAliceScenario(t *testing.T) {
	for _, backend := range []string{"sql", "redis"} {
		t.Run(backend, func(t *testing.T) {
			srv, a := newServer(t, testConfig(t), backend == "redis")
			alice := newBrowser(t, srv)
			creds := url.Values{"username": {"alice"}, "password": {"pw123"}}

			resp, _ := alice.send(http.MethodPost, "/register", creds)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/login", resp.Header.Get("Location"))

			resp, _ = alice.send(http.MethodPost, "/login", creds)
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

			resp, _ = alice.send(http.MethodPost, "/goals", url.Values{
				"category":    {"fitness"},
				"description": {"run 5k"},
				"dueDate":     {"2024-01-01"},
			})
			require.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

			resp, body := alice.get("/goals")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, 1, strings.Count(body, "data-goal-id="))
			assert.Contains(t, body, `value="run 5k"`)

			aliceID, err := a.AuthService.Authenticate(context.Background(), "alice", "pw123")
			require.NoError(t, err)
			goals, err := a.GoalService.List(context.Background(), aliceID)
			require.NoError(t, err)
			require.Len(t, goals, 1)
			assert.Equal(t, aliceID, goals[0].UserID)
			assert.Equal(t, "run 5k", goals[0].Description)

			resp, body = alice.get("/dashboard")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "Hello, alice")
			assert.Contains(t, body, `data-stat="Goals">1<`)
		})
	}
}

func TestRegisterErrors(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)

	resp, _ := b.send(http.MethodPost, "/register", url.Values{"username": {""}, "password": {"pw123"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = b.send(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {""}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = b.send(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw123"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, body := b.send(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"other"}})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "already taken")
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)

	resp, _ := b.send(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw123"}})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	wrong, wrongBody := b.send(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"nope"}})
	unknown, unknownBody := b.send(http.MethodPost, "/login", url.Values{"username": {"mallory"}, "password": {"nope"}})

	assert.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Contains(t, wrongBody, "Invalid username or password.")
	assert.Contains(t, unknownBody, "Invalid username or password.")
	assert.Empty(t, b.cookie(service.SessionCookieName))
}

func TestGuestsAreSentToLogin(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)

	for _, path := range []string{"/dashboard", "/goals", "/achievements"} {
		resp, _ := b.get(path)
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp, _ := b.send(http.MethodPost, "/goals", url.Values{"description": {"sneaky"}})
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp, _ = b.do(http.MethodGet, "/dashboard", nil, map[string]string{"HX-Request": "true"})
	assert.Equal(t, "/login", resp.Header.Get("HX-Redirect"))
}

func TestLogoutEndsSession(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)
	b.registerAndLogin("alice", "pw123")

	handle := b.cookie(service.SessionCookieName)

	resp, _ := b.get("/dashboard")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = b.get("/logout")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))
	assert.Empty(t, b.cookie(service.SessionCookieName))

	resp, _ = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// Replaying the old cookie does not revive the session.
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/dashboard", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: service.SessionCookieName, Value: handle})
	replay, err := b.client.Do(req)
	require.NoError(t, err)
	defer replay.Body.Close()
	assert.Equal(t, http.StatusSeeOther, replay.StatusCode)

	// Logging out twice is harmless.
	resp, _ = b.get("/logout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func TestCrossUserGoalMutations(t *testing.T) {
	srv, a := newServer(t, testConfig(t), false)
	ctx := context.Background()

	alice := newBrowser(t, srv)
	alice.registerAndLogin("alice", "pw123")
	bob := newBrowser(t, srv)
	bob.registerAndLogin("bob", "pw456")

	resp, _ := alice.send(http.MethodPost, "/goals", url.Values{
		"category":    {"fitness"},
		"description": {"run 5k"},
		"dueDate":     {"2024-01-01"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	aliceID, err := a.AuthService.Authenticate(ctx, "alice", "pw123")
	require.NoError(t, err)
	goals, err := a.GoalService.List(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	goalPath := "/goals/" + goals[0].ID

	resp, _ = bob.send(http.MethodPut, goalPath, url.Values{
		"category":    {"hijacked"},
		"description": {"hijacked"},
		"dueDate":     {"never"},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	resp, _ = bob.send(http.MethodDelete, goalPath, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	goal, err := a.GoalService.ByID(ctx, goals[0].ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, aliceID, goal.UserID)
	assert.Equal(t, "run 5k", goal.Description)

	_, body := bob.get("/goals")
	assert.NotContains(t, body, "run 5k")

	// The owner can update and delete.
	resp, _ = alice.send(http.MethodPut, goalPath, url.Values{
		"category":    {"fitness"},
		"description": {"run 10k"},
		"dueDate":     {"2024-02-01"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	goal, err = a.GoalService.ByID(ctx, goals[0].ID, aliceID)
	require.NoError(t, err)
	assert.Equal(t, "run 10k", goal.Description)

	resp, _ = alice.do(http.MethodDelete, goalPath, nil, map[string]string{
		"X-CSRF-Token": alice.csrf(),
		"HX-Request":   "true",
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("HX-Redirect"))

	resp, _ = alice.send(http.MethodDelete, goalPath, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestAchievements(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)

	alice := newBrowser(t, srv)
	alice.registerAndLogin("alice", "pw123")
	bob := newBrowser(t, srv)
	bob.registerAndLogin("bob", "pw456")

	resp, _ := alice.send(http.MethodPost, "/achievements", url.Values{
		"goalId":    {"not-a-real-goal"},
		"timestamp": {"2024-01-01T08:00"},
		"details":   {"first 5k under 30 minutes"},
	})
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))

	resp, body := alice.get("/achievements")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "first 5k under 30 minutes")

	_, body = bob.get("/achievements")
	assert.NotContains(t, body, "first 5k under 30 minutes")
}

func TestCSRFRequired(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)
	b.csrf()

	resp, _ := b.do(http.MethodPost, "/register", url.Values{"username": {"alice"}, "password": {"pw123"}}, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = b.do(http.MethodPost, "/login", url.Values{"username": {"alice"}, "password": {"pw123"}}, map[string]string{
		"X-CSRF-Token": "forged",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimitAuthRequests = 2
	srv, _ := newServer(t, cfg, false)
	b := newBrowser(t, srv)

	creds := url.Values{"username": {"alice"}, "password": {"wrong"}}
	for i := 0; i < 2; i++ {
		resp, _ := b.send(http.MethodPost, "/login", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, _ := b.send(http.MethodPost, "/login", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Pages stay reachable.
	resp, _ = b.get("/login")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPublicPages(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)

	resp, body := b.get("/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Welcome")
	assert.Contains(t, resp.Header.Get("Content-Security-Policy"), "nonce-")

	resp, body = b.get("/about")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "About")

	resp, body = b.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")

	resp, body = b.get("/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Disallow: /dashboard")

	resp, body = b.get("/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestSignedInUsersSkipAuthPages(t *testing.T) {
	srv, _ := newServer(t, testConfig(t), false)
	b := newBrowser(t, srv)
	b.registerAndLogin("alice", "pw123")

	resp, _ := b.get("/login")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestSessionStoreOutageKeepsSession(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := app.Build(testConfig(t), dbtest.New(t), repository.NewRedisSessionRepository(rdb))
	srv := httptest.NewServer(routes.SetupRoutes(a))
	t.Cleanup(srv.Close)

	alice := newBrowser(t, srv)
	alice.registerAndLogin("alice", "pw123")
	handle := alice.cookie(service.SessionCookieName)

	mr.Close()
	resp, _ := alice.get("/dashboard")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.Equal(t, handle, alice.cookie(service.SessionCookieName))

	require.NoError(t, mr.Restart())
	resp, body := alice.get("/dashboard")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Hello, alice")
}
