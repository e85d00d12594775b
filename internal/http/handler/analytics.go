package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"folio/internal/portfolio"
)

type AnalyticsHandler struct {
	Svc *portfolio.AnalyticsService
}

type recordVisitReq struct {
	Page      string `json:"page"`
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
}

// RecordVisit handles POST /analytics/visit (public beacon). Every field
// is optional; an empty or absent body still records a visit.
func (h *AnalyticsHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var req recordVisitReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	err := h.Svc.RecordVisit(r.Context(), portfolio.VisitInput{
		Page:      req.Page,
		UserAgent: req.UserAgent,
		Referrer:  req.Referrer,
		IP:        clientIP(r),
	})
	if err != nil {
		slog.Error("visit record failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to record visit")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Report handles GET /admin/analytics.
func (h *AnalyticsHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.Svc.Report(r.Context())
	if err != nil {
		slog.Error("analytics report failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// clientIP is best effort: the CDN header wins, then the standard proxy
// header, else "unknown".
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("cf-connecting-ip"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("x-forwarded-for"); ip != "" {
		return ip
	}
	return "unknown"
}
