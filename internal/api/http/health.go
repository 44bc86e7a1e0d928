package http

import (
	"net/http"
	"time"

	"github.com/piyushKumar-1/betterbe/internal/api/respond"
	"github.com/piyushKumar-1/betterbe/internal/health"
)

// HealthHandler reports service and storage liveness.
type HealthHandler struct {
	pinger health.HealthPinger
}

func NewHealthHandler(p health.HealthPinger) *HealthHandler {
	return &HealthHandler{pinger: p}
}

// CheckHealth handles GET /health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}

// CheckStorageHealth handles GET /health/db
func (h *HealthHandler) CheckStorageHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.pinger.HealthPing(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"time":   time.Now().UTC(),
	})
}
