package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-notify-api/internal/application/feed"
	"github.com/go-notify-api/internal/transport/http/middleware"
)

// NotificationHandler serves the reader-facing feed endpoints.
type NotificationHandler struct {
	svc feed.Service
}

func NewNotificationHandler(svc feed.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	reader, ok := middleware.ReaderFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	notifications, err := h.svc.Feed(r.Context(), reader)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, FeedEnvelope{Notifications: notifications, Count: len(notifications)})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	reader, ok := middleware.ReaderFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	count, err := h.svc.UnreadCount(r.Context(), reader)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UnreadCountEnvelope{Unread: count})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	reader, ok := middleware.ReaderFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.MarkRead(r.Context(), chi.URLParam(r, "id"), reader.Identity); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "marked read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	reader, ok := middleware.ReaderFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.MarkAllRead(r.Context(), reader); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "all read"})
}

func (h *NotificationHandler) Remove(w http.ResponseWriter, r *http.Request) {
	reader, ok := middleware.ReaderFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := h.svc.Remove(r.Context(), chi.URLParam(r, "id"), reader.Identity); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "removed"})
}
