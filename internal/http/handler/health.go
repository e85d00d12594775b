package handler

import (
	"net/http"

	"folio/internal/portfolio"
)

type HealthHandler struct {
	Svc *portfolio.HealthService
}

// Check handles GET /health. Degraded store health maps to 503; a clean
// round trip (even one that read back a stale value) maps to 200.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	hs := h.Svc.Check(r.Context())
	status := http.StatusOK
	if hs.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respondJSON(w, status, hs)
}
