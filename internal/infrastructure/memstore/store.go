package memstore

import (
	"context"
	"sync"

	"github.com/go-notify-api/internal/domain"
)

// Store is a mutex-guarded in-memory event log, used in tests and single-node
// deployments that don't need the log to survive a restart. It honours the
// same read-all/write-all contract as the DynamoDB store.
type Store struct {
	mu  sync.Mutex
	log []domain.Notification
}

func New() *Store {
	return &Store{log: []domain.Notification{}}
}

// LoadAll returns a copy of the current log so callers can transform it
// without aliasing the stored slice.
func (s *Store) LoadAll(_ context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Notification, len(s.log))
	copy(out, s.log)
	return out, nil
}

// SaveAll overwrites the stored log.
func (s *Store) SaveAll(_ context.Context, log []domain.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = make([]domain.Notification, len(log))
	copy(s.log, log)
	return nil
}
