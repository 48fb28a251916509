package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/middleware"
	"github.com/templui/healthtrack/internal/service"
	"github.com/templui/healthtrack/internal/ui"
	"github.com/templui/healthtrack/internal/ui/pages"
)

type AchievementHandler struct {
	achievementService *service.AchievementService
	goalService        *service.GoalService
}

func NewAchievementHandler(achievementService *service.AchievementService, goalService *service.GoalService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
		goalService:        goalService,
	}
}

func (h *AchievementHandler) AchievementsPage(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	achievements, err := h.achievementService.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get achievements", "error", err, "user_id", userID)
		http.Error(w, "Failed to load achievements", http.StatusInternalServerError)
		return
	}

	// Goals only feed the form's select and the list labels.
	goals, err := h.goalService.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get goals", "error", err, "user_id", userID)
		http.Error(w, "Failed to load achievements", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Achievements(achievements, goals))
}

func (h *AchievementHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	achievement, err := h.achievementService.Create(r.Context(), userID,
		r.FormValue("goalId"),
		r.FormValue("timestamp"),
		r.FormValue("details"),
	)
	if err != nil {
		slog.Error("failed to create achievement", "error", err, "user_id", userID)
		http.Error(w, "Failed to create achievement", http.StatusInternalServerError)
		return
	}

	slog.Info("achievement recorded", "user_id", userID, "achievement_id", achievement.ID)
	middleware.Redirect(w, r, "/dashboard")
}
