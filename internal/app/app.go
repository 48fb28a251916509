package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/templui/healthtrack/internal/config"
	"github.com/templui/healthtrack/internal/db"
	"github.com/templui/healthtrack/internal/repository"
	"github.com/templui/healthtrack/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Redis              *redis.Client
	AuthService        *service.AuthService
	UserService        *service.UserService
	SessionService     *service.SessionService
	Guard              *service.Guard
	GoalService        *service.GoalService
	AchievementService *service.AchievementService
	ContentService     *service.ContentService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Sessions live in the database unless Redis is configured
	sessionRepository := repository.NewSessionRepository(database)

	var rdb *redis.Client
	if cfg.SessionStore == config.SessionStoreRedis {
		rdb, err = openRedis(cfg.RedisURL)
		if err != nil {
			_ = database.Close()
			return nil, err
		}
		sessionRepository = repository.NewRedisSessionRepository(rdb)
	}

	a := Build(cfg, database, sessionRepository)
	a.Redis = rdb
	return a, nil
}

// Build wires repositories and services over stores that are already open
// and migrated.
func Build(cfg *config.Config, database *sqlx.DB, sessionRepository repository.SessionRepository) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	achievementRepository := repository.NewAchievementRepository(database)

	// Services
	sessionService := service.NewSessionService(
		sessionRepository,
		cfg.SessionSecret,
		cfg.SessionTTL,
		cfg.IsProduction(),
	)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		AuthService:        service.NewAuthService(userRepository, service.NewPasswordHasher()),
		UserService:        service.NewUserService(userRepository),
		SessionService:     sessionService,
		Guard:              service.NewGuard(sessionService),
		GoalService:        service.NewGoalService(goalRepository),
		AchievementService: service.NewAchievementService(achievementRepository),
		ContentService:     service.NewContentService(cfg.ContentPath),
	}
}

func openRedis(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
