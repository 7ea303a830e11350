package reminder

import (
	"context"
	"testing"
	"time"

	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/pkg/id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	log   []domain.Notification
	saves int
}

func (f *fakeStore) LoadAll(_ context.Context) ([]domain.Notification, error) {
	out := make([]domain.Notification, len(f.log))
	copy(out, f.log)
	return out, nil
}

func (f *fakeStore) SaveAll(_ context.Context, log []domain.Notification) error {
	f.log = make([]domain.Notification, len(log))
	copy(f.log, log)
	f.saves++
	return nil
}

type mockEntityLookup struct{ mock.Mock }

func (m *mockEntityLookup) Lookup(ctx context.Context, entityType domain.EntityType, entityID string) (*domain.EntitySnapshot, error) {
	args := m.Called(ctx, entityType, entityID)
	if s, _ := args.Get(0).(*domain.EntitySnapshot); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func lookupReturning(snap *domain.EntitySnapshot) *mockEntityLookup {
	el := &mockEntityLookup{}
	el.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(snap, nil)
	return el
}

func countByID(log []domain.Notification, wantID string) int {
	n := 0
	for i := range log {
		if log[i].ID == wantID {
			n++
		}
	}
	return n
}

const week = 7 * 24 * time.Hour

func TestUpsert_CreatesThenRetractsOnTerminalStatus(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(3 * 24 * time.Hour),
		Creator:  "alice",
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))

	key := id.Reminder("req-1", domain.RoleStockist)
	require.Equal(t, 1, countByID(store.log, key))
	got := store.log[0]
	assert.Equal(t, domain.EventEntityExpiring, got.EventType)
	assert.Equal(t, domain.SystemIdentity, got.TriggeredBy)
	assert.Equal(t, []string{domain.RoleStockist}, got.TargetAudience)
	assert.Contains(t, got.Message, "R-100")

	// The request completes. The next sync must retract the reminder.
	svc = NewService(store, lookupReturning(&domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusCompleted,
		Deadline: snap.Deadline,
	}), week)
	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))

	assert.Equal(t, 0, countByID(store.log, key))
}

func TestUpsert_AtMostOnePerKey(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
	}
	svc := NewService(store, lookupReturning(snap), week)

	for i := 0; i < 4; i++ {
		require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))
	}

	assert.Equal(t, 1, countByID(store.log, id.Reminder("req-1", domain.RoleStockist)))
	assert.Len(t, store.log, 1)
}

func TestUpsert_LeavesOtherNotificationsAlone(t *testing.T) {
	store := &fakeStore{log: []domain.Notification{
		{ID: "evt-1", EventType: domain.EventEntityCreated, EntityID: "req-1"},
	}}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))

	require.Len(t, store.log, 2)
	assert.Equal(t, "evt-1", store.log[0].ID)
}

func TestUpsert_NoDeadlineNoReminder(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{Number: "R-100", Status: domain.RequestStatusOpen}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))

	assert.Empty(t, store.log)
	assert.Zero(t, store.saves, "nothing to retract, nothing to write")
}

func TestUpsert_DeadlineBeyondLookahead(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(30 * 24 * time.Hour),
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))
	assert.Empty(t, store.log)
}

func TestUpsert_OverdueDeadlineRetracts(t *testing.T) {
	key := id.Reminder("req-1", domain.RoleStockist)
	store := &fakeStore{log: []domain.Notification{{ID: key, EventType: domain.EventEntityExpiring}}}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(-time.Hour),
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))
	assert.Empty(t, store.log)
}

func TestUpsert_MissingEntityRetracts(t *testing.T) {
	key := id.Reminder("req-1", domain.RoleStockist)
	store := &fakeStore{log: []domain.Notification{{ID: key, EventType: domain.EventEntityExpiring}}}
	el := &mockEntityLookup{}
	el.On("Lookup", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	svc := NewService(store, el, week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", domain.RoleStockist))
	assert.Empty(t, store.log)
}

func TestUpsert_OrderReminderAddressedToSupplier(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "O-200",
		Status:   domain.OrderStatusInTransit,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
		Supplier: "Supplier X",
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityOrder, "ord-1", domain.RoleSupplier))

	require.Len(t, store.log, 1)
	got := store.log[0]
	assert.Equal(t, domain.EventEntityETAReminder, got.EventType)
	assert.Equal(t, "Supplier X", got.AddressedTo)
	assert.Equal(t, []string{domain.RoleSupplier}, got.TargetAudience)
}

func TestUpsert_IdentityTargetGoesToSpecificTargets(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusAssigned,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
		Creator:  "alice",
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.Upsert(context.Background(), domain.EntityRequest, "req-1", "alice"))

	require.Len(t, store.log, 1)
	assert.Equal(t, []string{"alice"}, store.log[0].SpecificTargets)
	assert.Empty(t, store.log[0].TargetAudience)
}

func TestSyncEntity_FansOutRequestTargets(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "R-100",
		Status:   domain.RequestStatusOpen,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
		Creator:  "alice",
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.SyncEntity(context.Background(), domain.EntityRequest, "req-1"))

	// Stockist and creator qualify while Open; buyer-agent needs Assigned.
	assert.Equal(t, 1, countByID(store.log, id.Reminder("req-1", domain.RoleStockist)))
	assert.Equal(t, 0, countByID(store.log, id.Reminder("req-1", domain.RoleBuyerAgent)))
	assert.Equal(t, 1, countByID(store.log, id.Reminder("req-1", "alice")))
}

func TestSyncEntity_OrderTargets(t *testing.T) {
	store := &fakeStore{}
	snap := &domain.EntitySnapshot{
		Number:   "O-200",
		Status:   domain.OrderStatusCreated,
		Deadline: time.Now().Add(2 * 24 * time.Hour),
		Supplier: "Supplier X",
		Creator:  "alice",
	}
	svc := NewService(store, lookupReturning(snap), week)

	require.NoError(t, svc.SyncEntity(context.Background(), domain.EntityOrder, "ord-1"))

	assert.Equal(t, 1, countByID(store.log, id.Reminder("ord-1", domain.RoleSupplier)))
	assert.Equal(t, 1, countByID(store.log, id.Reminder("ord-1", "alice")))
}
