package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/service"
	"github.com/templui/healthtrack/internal/ui"
	"github.com/templui/healthtrack/internal/ui/pages"
)

type DashboardHandler struct {
	userService        *service.UserService
	goalService        *service.GoalService
	achievementService *service.AchievementService
}

func NewDashboardHandler(userService *service.UserService, goalService *service.GoalService, achievementService *service.AchievementService) *DashboardHandler {
	return &DashboardHandler{
		userService:        userService,
		goalService:        goalService,
		achievementService: achievementService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	user, err := h.userService.ByID(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get user", "error", err, "user_id", userID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	goalCount, err := h.goalService.Count(r.Context(), userID)
	if err != nil {
		slog.Error("failed to count goals", "error", err, "user_id", userID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	achievementCount, err := h.achievementService.Count(r.Context(), userID)
	if err != nil {
		slog.Error("failed to count achievements", "error", err, "user_id", userID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Dashboard(user.Username, goalCount, achievementCount))
}
