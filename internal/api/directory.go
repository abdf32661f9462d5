package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/service/directory"
)

// ListApps handles GET /api/apps.
func (h *Handlers) ListApps(w http.ResponseWriter, r *http.Request) {
	apps, err := h.directory.Apps(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if apps == nil {
		apps = []domain.App{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"apps": apps})
}

// GetApp handles GET /api/apps/{id}.
func (h *Handlers) GetApp(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	app, err := h.directory.GetApp(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

// GetSystemApp handles GET /api/apps/system.
func (h *Handlers) GetSystemApp(w http.ResponseWriter, r *http.Request) {
	app, err := h.directory.SystemApp(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

// UpdateApp handles PATCH /api/apps/{id}.
func (h *Handlers) UpdateApp(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	var u directory.AppUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.directory.UpdateApp(r.Context(), auth.ActorFrom(r.Context()), id, u)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, app)
}

// ListTeams handles GET /api/teams. Site admins only.
func (h *Handlers) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.directory.Teams(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if teams == nil {
		teams = []domain.Team{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// ListAdmins handles GET /api/admins.
func (h *Handlers) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.directory.Admins(r.Context(), auth.ActorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if admins == nil {
		admins = []domain.Admin{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

// Viewer handles GET /api/viewer, returning the authenticated admin.
func (h *Handlers) Viewer(w http.ResponseWriter, r *http.Request) {
	viewer, err := h.directory.Viewer(auth.ActorFrom(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, viewer)
}
