package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/templui/nocturne/internal/render"
)

type pinger interface {
	PingContext(ctx context.Context) error
}

type healthHandler struct {
	db pinger
}

func NewHealthHandler(db pinger) *healthHandler {
	return &healthHandler{db: db}
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	err := h.db.PingContext(ctx)
	if err != nil {
		slog.Error("health check failed", "error", err)
		render.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
