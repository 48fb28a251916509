package middleware

import (
	"net/http"

	"github.com/templui/healthtrack/internal/config"
	"github.com/templui/healthtrack/internal/ctxkeys"
)

// Config exposes cfg.Sanitized() to handlers and templates via ctxkeys.Config.
func Config(cfg *config.Config) func(http.Handler) http.Handler {
	public := cfg.Sanitized()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(ctxkeys.WithConfig(r.Context(), public)))
		})
	}
}
