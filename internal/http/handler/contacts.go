package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"folio/internal/portfolio"

	"github.com/go-chi/chi/v5"
)

type ContactHandler struct {
	Svc *portfolio.ContactService
}

type submitContactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /contact. All four fields are required.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitContactReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	fields := []struct{ name, value string }{
		{"name", req.Name},
		{"email", req.Email},
		{"subject", req.Subject},
		{"message", req.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			respondError(w, http.StatusBadRequest, f.name+" is required")
			return
		}
	}

	sub, err := h.Svc.Submit(r.Context(), portfolio.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		slog.Error("contact submission failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to process contact form submission")
		return
	}

	slog.Info("contact submission received", "email", sub.Email, "subject", sub.Subject)
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Thank you for your message! I will get back to you soon.",
		"id":      sub.ID,
	})
}

// AdminList handles GET /admin/contacts: the full list, newest first.
func (h *ContactHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Svc.List(r.Context())
	if err != nil {
		slog.Error("contact list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch contacts")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"contacts": contacts})
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /admin/contacts/{id}.
func (h *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sub, err := h.Svc.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, portfolio.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Contact not found")
		return
	}
	if err != nil {
		slog.Error("contact status update failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update contact status")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "contact": sub})
}
