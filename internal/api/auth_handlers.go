package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type loginRequest struct {
	APIKey string `json:"api_key"`
}

// HandleLogin exchanges an API key for a session token.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.APIKey == "" {
		respondError(w, http.StatusBadRequest, "api_key is required")
		return
	}

	session, admin, err := h.authn.Login(r.Context(), req.APIKey)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
		"admin":      admin,
	})
}

// HandleLogout invalidates the presented session token.
func (h *Handlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		h.authn.Logout(strings.TrimPrefix(header, "Bearer "))
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}
