package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreSQL   = "sql"
	SessionStoreRedis = "redis"
)

type Config struct {
	// Application
	AppName     string
	AppEnv      string
	Port        string
	ContentPath string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string // "sql" or "redis"
	RedisURL      string

	// Rate limiting for POST /login and POST /register
	RateLimitAuthRequests int
	RateLimitAuthWindow   time.Duration

	// TrustProxy takes the client address from X-Real-IP / X-Forwarded-For.
	// Only enable behind a reverse proxy that sets these headers itself.
	TrustProxy bool

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName:     envString("APP_NAME", "HealthTrack"),
		AppEnv:      envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:        envString("PORT", "8090"),
		ContentPath: envString("CONTENT_PATH", "content"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/healthtrack.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Sessions
		SessionSecret: envRequired("SESSION_SECRET"),
		SessionTTL:    envDuration("SESSION_TTL", 168*time.Hour), // 7 days
		SessionStore:  envString("SESSION_STORE", SessionStoreSQL),
		RedisURL:      envString("REDIS_URL", "redis://localhost:6379/0"),

		// Rate limiting
		RateLimitAuthRequests: envInt("RATE_LIMIT_AUTH_REQUESTS", 5),
		RateLimitAuthWindow:   envDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
		TrustProxy:            envBool("TRUST_PROXY", false),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),
	}

	if cfg.SessionStore != SessionStoreSQL && cfg.SessionStore != SessionStoreRedis {
		slog.Warn("config unknown session store, using sql", "value", cfg.SessionStore)
		cfg.SessionStore = SessionStoreSQL
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction refuses to boot with secrets that are too weak to sign session cookies.
func validateProduction(cfg *Config) {
	if len(cfg.SessionSecret) < 32 {
		slog.Error("production deployment requires SESSION_SECRET of at least 32 characters")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return i
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy of the config without secrets or connection strings.
// Safe to expose in ctx and templates.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName: c.AppName,
		AppEnv:  c.AppEnv,
		Port:    c.Port,
	}
}
