package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/middleware"
	"github.com/templui/healthtrack/internal/model"
	"github.com/templui/healthtrack/internal/service"
	"github.com/templui/healthtrack/internal/ui"
	"github.com/templui/healthtrack/internal/ui/pages"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) GoalsPage(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goals, err := h.goalService.List(r.Context(), userID)
	if err != nil {
		slog.Error("failed to get goals", "error", err, "user_id", userID)
		http.Error(w, "Failed to load goals", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Goals(goals))
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	goal, err := h.goalService.Create(r.Context(), userID,
		r.FormValue("category"),
		r.FormValue("description"),
		r.FormValue("dueDate"),
	)
	if err != nil {
		slog.Error("failed to create goal", "error", err, "user_id", userID)
		http.Error(w, "Failed to create goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal created", "user_id", userID, "goal_id", goal.ID)
	middleware.Redirect(w, r, "/dashboard")
}

// Update and Delete answer 500 for foreign and missing goals alike.
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("goalId")

	err := h.goalService.Update(r.Context(), goalID, userID, model.GoalFields{
		Category:    r.FormValue("category"),
		Description: r.FormValue("description"),
		DueDate:     r.FormValue("dueDate"),
	})
	if err != nil {
		logGoalError("failed to update goal", err, userID, goalID)
		http.Error(w, "Failed to update goal", http.StatusInternalServerError)
		return
	}

	middleware.Redirect(w, r, "/dashboard")
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())
	goalID := r.PathValue("goalId")

	err := h.goalService.Delete(r.Context(), goalID, userID)
	if err != nil {
		logGoalError("failed to delete goal", err, userID, goalID)
		http.Error(w, "Failed to delete goal", http.StatusInternalServerError)
		return
	}

	slog.Info("goal deleted", "user_id", userID, "goal_id", goalID)
	middleware.Redirect(w, r, "/dashboard")
}

func logGoalError(msg string, err error, userID, goalID string) {
	if errors.Is(err, service.ErrNotFoundOrForbidden) {
		slog.Warn(msg, "error", err, "user_id", userID, "goal_id", goalID)
		return
	}
	slog.Error(msg, "error", err, "user_id", userID, "goal_id", goalID)
}
