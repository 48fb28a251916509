package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "dev-secret")

	cfg := Load()

	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, SessionStoreSQL, cfg.SessionStore)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RateLimitAuthRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitAuthWindow)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("RATE_LIMIT_AUTH_REQUESTS", "10")
	t.Setenv("TRUST_PROXY", "true")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStoreRedis, cfg.SessionStore)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, 10, cfg.RateLimitAuthRequests)
	assert.True(t, cfg.TrustProxy)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "dev-secret")
	t.Setenv("SESSION_TTL", "a week")
	t.Setenv("SESSION_STORE", "memcached")
	t.Setenv("RATE_LIMIT_AUTH_REQUESTS", "-3")
	t.Setenv("RATE_LIMIT_AUTH_WINDOW", "0s")
	t.Setenv("TRUST_PROXY", "sometimes")

	cfg := Load()

	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, SessionStoreSQL, cfg.SessionStore)
	assert.Equal(t, 5, cfg.RateLimitAuthRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitAuthWindow)
	assert.False(t, cfg.TrustProxy)
}

func TestLoad_NonPositiveDurationsFallBack(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("SESSION_SECRET", "dev-secret")

	for _, v := range []string{"0s", "-1h"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("SESSION_TTL", v)
			t.Setenv("RATE_LIMIT_AUTH_WINDOW", v)

			cfg := Load()

			assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
			assert.Equal(t, time.Minute, cfg.RateLimitAuthWindow)
		})
	}
}

func TestSanitized(t *testing.T) {
	cfg := &Config{
		AppName:       "HealthTrack",
		AppEnv:        "production",
		Port:          "8090",
		DBConnection:  "postgres://user:pass@db/app",
		SessionSecret: "secret",
		RedisURL:      "redis://:pass@cache:6379",
		SentryDSN:     "https://key@sentry.example/1",
	}

	s := cfg.Sanitized()

	assert.Equal(t, "HealthTrack", s.AppName)
	assert.True(t, s.IsProduction())
	assert.Empty(t, s.DBConnection)
	assert.Empty(t, s.SessionSecret)
	assert.Empty(t, s.RedisURL)
	assert.Empty(t, s.SentryDSN)
}
