package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/ctxkeys"
	"github.com/templui/healthtrack/internal/service"
)

// SessionMiddleware resolves the session cookie and adds the user id to the
// context. Requests without a valid session continue as guests. A store
// failure answers 500 and leaves the cookie alone.
func SessionMiddleware(guard *service.Guard, sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(service.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := guard.RequireAuth(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, service.ErrUnauthenticated) {
					slog.Error("failed to resolve session", "error", err)
					http.Error(w, "Internal server error", http.StatusInternalServerError)
					return
				}
				// Stale or forged handle: drop it so the browser stops sending it
				sessions.ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth sends guests to /login.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) == "" {
			Redirect(w, r, "/login")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireGuest sends signed-in users to the dashboard.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.UserID(r.Context()) != "" {
			Redirect(w, r, "/dashboard")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// Redirect issues a 303, or an HX-Redirect header for HTMX requests so the
// browser does a full page load.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", url)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
