package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-notify-api/internal/application/publisher"
	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/pkg/validate"
	"github.com/go-notify-api/internal/transport/http/middleware"
)

// EventHandler exposes one publish endpoint per domain event kind. The actor
// is always taken from the session claims, never from the request body.
type EventHandler struct {
	svc publisher.Service
}

func NewEventHandler(svc publisher.Service) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RequestCreated(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if !h.decodeEvent(w, r, &in, &in) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestCreated(r.Context(), in) })
}

func (h *EventHandler) RequestUpdated(w http.ResponseWriter, r *http.Request) {
	var in domain.RequestUpdatedInput
	if !h.decodeEvent(w, r, &in, &in.EventInput) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestUpdated(r.Context(), in) })
}

func (h *EventHandler) RequestViewed(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if !h.decodeEvent(w, r, &in, &in) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestViewed(r.Context(), in) })
}

func (h *EventHandler) RequestReviewed(w http.ResponseWriter, r *http.Request) {
	var in domain.RequestReviewedInput
	if !h.decodeEvent(w, r, &in, &in.EventInput) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestReviewed(r.Context(), in) })
}

func (h *EventHandler) RequestCancelled(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if !h.decodeEvent(w, r, &in, &in) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestCancelled(r.Context(), in) })
}

func (h *EventHandler) RequestConverted(w http.ResponseWriter, r *http.Request) {
	var in domain.EventInput
	if !h.decodeEvent(w, r, &in, &in) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.RequestConverted(r.Context(), in) })
}

func (h *EventHandler) OrderStatusChanged(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderStatusChangedInput
	if !h.decodeEvent(w, r, &in, &in.EventInput) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.OrderStatusChanged(r.Context(), in) })
}

func (h *EventHandler) OrderArrivalRecorded(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderEventInput
	if !h.decodeEvent(w, r, &in, &in.EventInput) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.OrderArrivalRecorded(r.Context(), in) })
}

func (h *EventHandler) OrderClosed(w http.ResponseWriter, r *http.Request) {
	var in domain.OrderEventInput
	if !h.decodeEvent(w, r, &in, &in.EventInput) {
		return
	}
	h.respond(w, r, func() (*domain.Notification, error) { return h.svc.OrderClosed(r.Context(), in) })
}

// decodeEvent decodes the body into dst, stamps the actor from the session
// claims onto base, and validates. Returns false after writing an error.
func (h *EventHandler) decodeEvent(w http.ResponseWriter, r *http.Request, dst interface{}, base *domain.EventInput) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	base.TriggeredBy = claims.Identity
	base.TriggeredByRole = claims.Role
	if err := validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (h *EventHandler) respond(w http.ResponseWriter, _ *http.Request, publish func() (*domain.Notification, error)) {
	n, err := publish()
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
