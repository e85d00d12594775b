package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"folio/internal/portfolio"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	Svc *portfolio.ProjectService
}

// List handles GET /projects (public).
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Svc.List(r.Context())
	if err != nil {
		slog.Error("project list failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch projects")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// Upsert handles POST /admin/projects. The body is an arbitrary JSON
// object; a supplied id updates that project in place.
func (h *ProjectHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var data portfolio.Project
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	project, err := h.Svc.Upsert(r.Context(), data)
	if err != nil {
		slog.Error("project save failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to save project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"success": true, "project": project})
}

// Delete handles DELETE /admin/projects/{id}. Success either way: a
// missing project is not distinguished from a deleted one.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		slog.Error("project delete failed", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete project")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Project deleted successfully",
	})
}
