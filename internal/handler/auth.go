package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/middleware"
	"github.com/templui/healthtrack/internal/service"
	"github.com/templui/healthtrack/internal/ui"
	"github.com/templui/healthtrack/internal/ui/pages"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Register("", ""))
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login("", ""))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.authService.Register(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidInput) {
		slog.Warn("registration rejected", "error", err, "username", username)
		ui.RenderStatus(w, r, http.StatusBadRequest, pages.Register("Please enter a valid username and password.", username))
		return
	}
	if errors.Is(err, service.ErrDuplicateUser) {
		slog.Warn("registration rejected", "error", err, "username", username)
		ui.RenderStatus(w, r, http.StatusConflict, pages.Register("That username is already taken.", username))
		return
	}
	if err != nil {
		slog.Error("registration failed", "error", err, "username", username)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	middleware.Redirect(w, r, "/login")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	userID, err := h.authService.Authenticate(r.Context(), username, password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		slog.Warn("login failed", "username", username)
		ui.RenderStatus(w, r, http.StatusUnauthorized, pages.Login("Invalid username or password.", username))
		return
	}
	if err != nil {
		slog.Error("login error", "error", err, "username", username)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	// A fresh session per login; any session the browser already had is dropped.
	h.destroySession(r)

	handle, err := h.sessionService.Create(r.Context(), userID)
	if err != nil {
		slog.Error("failed to create session", "error", err, "user_id", userID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.sessionService.SetCookie(w, handle)
	slog.Info("user logged in", "user_id", userID)
	middleware.Redirect(w, r, "/dashboard")
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.destroySession(r)
	h.sessionService.ClearCookie(w)
	middleware.Redirect(w, r, "/")
}

func (h *AuthHandler) destroySession(r *http.Request) {
	cookie, err := r.Cookie(service.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return
	}

	err = h.sessionService.Destroy(r.Context(), cookie.Value)
	if err != nil && !errors.Is(err, service.ErrSessionNotFound) {
		slog.Error("failed to destroy session", "error", err)
	}
}
