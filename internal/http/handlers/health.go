package handlers

import (
	"context"
	"net/http"
	"time"

	applog "github.com/hongminglow/finance-tracker-be/internal/log"
	"github.com/hongminglow/finance-tracker-be/internal/http/respond"
)

// Pinger is the storage reachability check behind /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the storage backend, whether it answers, and uptime.
type HealthHandler struct {
	store     Pinger
	backend   string
	startedAt time.Time
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Uptime  string `json:"uptime"`
}

func NewHealthHandler(store Pinger, backend string, startedAt time.Time) *HealthHandler {
	return &HealthHandler{store: store, backend: backend, startedAt: startedAt}
}

// Register mounts GET /health outside the API base path.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{
		Status:  "ok",
		Backend: h.backend,
		Uptime:  time.Since(h.startedAt).Truncate(time.Second).String(),
	}
	status := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		applog.FromContext(r.Context()).Error("storage ping failed", "backend", h.backend, applog.FieldError, err)
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}
	respond.JSON(w, status, resp)
}
