package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type dbPinger interface {
	PingContext(ctx context.Context) error
}

type storePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db       dbPinger
	sessions storePinger
}

func NewHealthHandler(db dbPinger, sessions storePinger) *HealthHandler {
	return &HealthHandler{db: db, sessions: sessions}
}

// Healthz reports 200 when the database and the session store answer.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err == nil {
		err = h.sessions.Ping(ctx)
	}
	if err != nil {
		slog.Error("health check failed", "error", err)
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
