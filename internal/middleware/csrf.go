package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/templui/healthtrack/internal/ctxkeys"
)

const (
	csrfCookieName = "csrf_token"
	csrfFormField  = "csrf_token"
	csrfHeader     = "X-CSRF-Token"
	csrfCookieAge  = 7 * 24 * 60 * 60
	csrfTokenLen   = 26 // length of rand.Text output
)

// CSRFProtection is a double-submit check. Every request gets a token cookie;
// unsafe methods must echo it in the X-CSRF-Token header or the csrf_token
// form field. The token is exposed through ctxkeys.CSRFToken for forms.
func CSRFProtection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := csrfCookie(w, r)
		ctx := ctxkeys.WithCSRFToken(r.Context(), token)

		if !isSafeMethod(r.Method) && !sameToken(token, submittedCSRFToken(r)) {
			slog.Warn("csrf check rejected request", "method", r.Method, "path", r.URL.Path, "ip", ClientIP(r))
			http.Error(w, "Invalid CSRF token", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// submittedCSRFToken reads the header htmx sets, falling back to the form body.
func submittedCSRFToken(r *http.Request) string {
	if token := r.Header.Get(csrfHeader); token != "" {
		return token
	}
	return r.PostFormValue(csrfFormField)
}

// csrfCookie returns the client's token, issuing a new cookie when it is
// missing or malformed.
func csrfCookie(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(csrfCookieName); err == nil && len(cookie.Value) == csrfTokenLen {
		return cookie.Value
	}

	cfg := ctxkeys.Config(r.Context())
	token := generateCSRFToken()
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   csrfCookieAge,
		HttpOnly: true,
		Secure:   cfg != nil && cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

func generateCSRFToken() string {
	return rand.Text()
}

func sameToken(expected, actual string) bool {
	if expected == "" || actual == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
