package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-notify-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReminderSvc struct{ mock.Mock }

func (m *mockReminderSvc) Upsert(ctx context.Context, entityType domain.EntityType, entityID, target string) error {
	return m.Called(ctx, entityType, entityID, target).Error(0)
}

func (m *mockReminderSvc) SyncEntity(ctx context.Context, entityType domain.EntityType, entityID string) error {
	return m.Called(ctx, entityType, entityID).Error(0)
}

type mockRetentionSvc struct{ mock.Mock }

func (m *mockRetentionSvc) Prune(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestSyncReminders_InvalidEntityType(t *testing.T) {
	h := NewMaintenanceHandler(&mockReminderSvc{}, &mockRetentionSvc{})
	body, _ := json.Marshal(map[string]string{"entity_type": "invoice", "entity_id": "x"})
	rr := httptest.NewRecorder()
	h.SyncReminders(rr, httptest.NewRequest(http.MethodPost, "/v1/reminders/sync", bytes.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSyncReminders_WholeEntity(t *testing.T) {
	reminders := &mockReminderSvc{}
	reminders.On("SyncEntity", mock.Anything, domain.EntityRequest, "req-1").Return(nil)
	h := NewMaintenanceHandler(reminders, &mockRetentionSvc{})

	body, _ := json.Marshal(map[string]string{"entity_type": "request", "entity_id": "req-1"})
	rr := httptest.NewRecorder()
	h.SyncReminders(rr, httptest.NewRequest(http.MethodPost, "/v1/reminders/sync", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	reminders.AssertExpectations(t)
}

func TestSyncReminders_SingleTarget(t *testing.T) {
	reminders := &mockReminderSvc{}
	reminders.On("Upsert", mock.Anything, domain.EntityOrder, "ord-1", domain.RoleSupplier).Return(nil)
	h := NewMaintenanceHandler(reminders, &mockRetentionSvc{})

	body, _ := json.Marshal(map[string]string{
		"entity_type": "order", "entity_id": "ord-1", "target": domain.RoleSupplier,
	})
	rr := httptest.NewRecorder()
	h.SyncReminders(rr, httptest.NewRequest(http.MethodPost, "/v1/reminders/sync", bytes.NewReader(body)))

	assert.Equal(t, http.StatusOK, rr.Code)
	reminders.AssertExpectations(t)
	reminders.AssertNotCalled(t, "SyncEntity", mock.Anything, mock.Anything, mock.Anything)
}

func TestPrune_ReportsCount(t *testing.T) {
	ret := &mockRetentionSvc{}
	ret.On("Prune", mock.Anything).Return(12, nil)
	h := NewMaintenanceHandler(&mockReminderSvc{}, ret)

	rr := httptest.NewRecorder()
	h.Prune(rr, httptest.NewRequest(http.MethodPost, "/v1/retention/prune", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp PruneEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, 12, resp.Pruned)
}
