package api

import (
	"net/http"
	"strconv"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/domain"
)

// LookupDenyList handles GET /api/deny-list/lookup?address=...&app_id=...
// Without app_id the global list is consulted. An address that is not
// blocked yields blocked=false rather than a 404.
func (h *Handlers) LookupDenyList(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		respondInvalidParam(w, "address", "must not be blank")
		return
	}

	appID, ok := optionalAppID(w, r)
	if !ok {
		return
	}

	entry, err := h.denyList.Lookup(r.Context(), auth.ActorFrom(r.Context()), address, appID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"blocked": entry != nil,
		"entry":   entry,
	})
}

// ListDenyList handles GET /api/deny-list, paginated newest first and
// optionally narrowed to one app.
func (h *Handlers) ListDenyList(w http.ResponseWriter, r *http.Request) {
	appID, ok := optionalAppID(w, r)
	if !ok {
		return
	}
	params := ParsePagination(r)

	entries, total, err := h.denyList.List(r.Context(), auth.ActorFrom(r.Context()), appID, params.Window())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.DenyListEntry{}
	}
	respondJSON(w, http.StatusOK, NewPaginatedResponse(entries, params, int64(total)))
}

func optionalAppID(w http.ResponseWriter, r *http.Request) (*int64, bool) {
	v := r.URL.Query().Get("app_id")
	if v == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		respondInvalidParam(w, "app_id", "must be an integer")
		return nil, false
	}
	return &id, true
}
