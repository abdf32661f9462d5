package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/delivery-monitor/internal/auth"
	"github.com/ignite/delivery-monitor/internal/domain"
	"github.com/ignite/delivery-monitor/internal/query"
)

// ListDeliveries handles GET /api/deliveries.
//
// Recognized filters: app_id, status, since (RFC 3339), from, to, meta_key,
// meta_value, and q for free-text recipient search. When q is present every
// other filter is ignored.
func (h *Handlers) ListDeliveries(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseDeliveryFilter(w, r)
	if !ok {
		return
	}
	params := ParsePagination(r)

	deliveries, total, err := h.deliveries.List(r.Context(), auth.ActorFrom(r.Context()), filter, params.Window())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if deliveries == nil {
		deliveries = []domain.Delivery{}
	}
	respondJSON(w, http.StatusOK, NewPaginatedResponse(deliveries, params, int64(total)))
}

// GetDelivery handles GET /api/deliveries/{id}, returning the delivery with
// its mail log lines attached.
func (h *Handlers) GetDelivery(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusNotFound, "not found")
		return
	}

	d, err := h.deliveries.Get(r.Context(), auth.ActorFrom(r.Context()), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// parseDeliveryFilter reads the filter params, writing a 422 and returning
// false on the first invalid one.
func parseDeliveryFilter(w http.ResponseWriter, r *http.Request) (query.DeliveryFilter, bool) {
	q := r.URL.Query()
	var f query.DeliveryFilter

	if v := q.Get("q"); v != "" {
		f.Search = &v
		return f, true
	}

	if v := q.Get("app_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			respondInvalidParam(w, "app_id", "must be an integer")
			return f, false
		}
		f.AppID = &id
	}
	if v := q.Get("status"); v != "" {
		status := domain.DeliveryStatus(v)
		if !status.Valid() {
			respondInvalidParam(w, "status", "unknown status")
			return f, false
		}
		f.Status = &status
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondInvalidParam(w, "since", "must be an RFC 3339 timestamp")
			return f, false
		}
		f.Since = &since
	}
	if v := q.Get("from"); v != "" {
		f.From = &v
	}
	if v := q.Get("to"); v != "" {
		f.To = &v
	}
	if v := q.Get("meta_key"); v != "" {
		f.MetaKey = &v
	}
	if v := q.Get("meta_value"); v != "" {
		f.MetaValue = &v
	}
	return f, true
}
