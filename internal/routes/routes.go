package routes

import (
	"net/http"

	"github.com/templui/healthtrack/internal/app"
	"github.com/templui/healthtrack/internal/handler"
	"github.com/templui/healthtrack/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ContentService)
	seo := handler.NewSEOHandler()
	auth := handler.NewAuthHandler(app.AuthService, app.SessionService)
	dashboard := handler.NewDashboardHandler(app.UserService, app.GoalService, app.AchievementService)
	goal := handler.NewGoalHandler(app.GoalService)
	achievement := handler.NewAchievementHandler(app.AchievementService, app.GoalService)
	health := handler.NewHealthHandler(app.DB, app.SessionService)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /healthz", health.Healthz)

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)

	// Content
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /about", home.AboutPage)

	// Auth (credential submissions are rate limited per IP)
	rateLimiter := middleware.RateLimit(middleware.NewRateLimiter(app.Cfg.RateLimitAuthRequests, app.Cfg.RateLimitAuthWindow))

	mux.HandleFunc("GET /register", middleware.RequireGuest(auth.RegisterPage))
	mux.HandleFunc("POST /register", rateLimiter(auth.Register))
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("POST /login", rateLimiter(auth.Login))
	mux.HandleFunc("GET /logout", auth.Logout)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboard.DashboardPage))

	// Goals
	mux.HandleFunc("GET /goals", middleware.RequireAuth(goal.GoalsPage))
	mux.HandleFunc("POST /goals", middleware.RequireAuth(goal.Create))
	mux.HandleFunc("PUT /goals/{goalId}", middleware.RequireAuth(goal.Update))
	mux.HandleFunc("DELETE /goals/{goalId}", middleware.RequireAuth(goal.Delete))

	// Achievements
	mux.HandleFunc("GET /achievements", middleware.RequireAuth(achievement.AchievementsPage))
	mux.HandleFunc("POST /achievements", middleware.RequireAuth(achievement.Create))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RealIP(app.Cfg.TrustProxy), // Before anything that logs or rate limits by IP
		middleware.Config(app.Cfg),            // SecurityHeaders and CSRF read it
		middleware.NonceMiddleware, // Must run before SecurityHeaders
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection,
		middleware.SessionMiddleware(app.Guard, app.SessionService),
		middleware.WithURLPath,
	)

	return handler
}
