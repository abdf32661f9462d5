package api

import (
	"net/http"
	"time"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/service/delivery"
	"github.com/ignite/delivery-monitor/internal/service/denylist"
	"github.com/ignite/delivery-monitor/internal/service/directory"
)

// Handlers bundles the HTTP handlers and their service dependencies.
type Handlers struct {
	deliveries *delivery.Service
	denyList   *denylist.Service
	directory  *directory.Service
	authn      *auth.Authenticator

	startedAt time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(
	deliveries *delivery.Service,
	denyList *denylist.Service,
	dir *directory.Service,
	authn *auth.Authenticator,
) *Handlers {
	return &Handlers{
		deliveries: deliveries,
		denyList:   denyList,
		directory:  dir,
		authn:      authn,
		startedAt:  time.Now(),
	}
}

// HealthCheck reports liveness. No auth required.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
	})
}
