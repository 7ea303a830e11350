package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-notify-api/internal/application/reminder"
	"github.com/go-notify-api/internal/application/retention"
	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/pkg/validate"
)

// MaintenanceHandler exposes the internal reminder-sync and retention
// endpoints. Both are restricted to the system role at the router.
type MaintenanceHandler struct {
	reminders reminder.Service
	retention retention.Service
}

func NewMaintenanceHandler(reminders reminder.Service, ret retention.Service) *MaintenanceHandler {
	return &MaintenanceHandler{reminders: reminders, retention: ret}
}

type syncRemindersRequest struct {
	EntityType string `json:"entity_type" validate:"required,oneof=request order"`
	EntityID   string `json:"entity_id" validate:"required"`
	// Target narrows the sync to one role or identity; empty syncs them all.
	Target string `json:"target,omitempty"`
}

func (h *MaintenanceHandler) SyncReminders(w http.ResponseWriter, r *http.Request) {
	var req syncRemindersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	entityType := domain.EntityType(req.EntityType)
	var err error
	if req.Target != "" {
		err = h.reminders.Upsert(r.Context(), entityType, req.EntityID, req.Target)
	} else {
		err = h.reminders.SyncEntity(r.Context(), entityType, req.EntityID)
	}
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reminders synced"})
}

func (h *MaintenanceHandler) Prune(w http.ResponseWriter, r *http.Request) {
	pruned, err := h.retention.Prune(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PruneEnvelope{Pruned: pruned})
}
