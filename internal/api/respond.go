package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/pkg/logger"
	"github.com/ignite/delivery-monitor/internal/policy"
	"github.com/ignite/delivery-monitor/internal/service/delivery"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
	"github.com/ignite/delivery-monitor/internal/service/directory"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("encode response failed", "error", err)
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func respondInvalidParam(w http.ResponseWriter, field, reason string) {
	respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error":  "validation failed",
		"field":  field,
		"reason": reason,
	})
}

// respondServiceError maps service-layer errors onto HTTP statuses. Unknown
// errors are logged and become an opaque 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve *directory.ValidationError
	switch {
	case errors.Is(err, policy.ErrUnauthorized), errors.Is(err, auth.ErrInvalidAPIKey),
		errors.Is(err, auth.ErrSessionExpired):
		respondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, policy.ErrForbidden):
		respondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, delivery.ErrNotFound), errors.Is(err, denylist.ErrNotFound),
		errors.Is(err, directory.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &ve):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]string{
			"error":  "validation failed",
			"field":  ve.Field,
			"reason": ve.Reason,
		})
	default:
		logger.Error("internal error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
