package retention

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-notify-api/internal/domain"
)

// Service bounds log growth: notifications older than the retention age are
// archived (when an archiver is configured) and dropped from the log. Age is
// the only criterion; unread notifications age out like read ones.
type Service interface {
	// Prune removes expired notifications and returns how many were dropped.
	Prune(ctx context.Context) (int, error)
}

type logStore interface {
	LoadAll(ctx context.Context) ([]domain.Notification, error)
	SaveAll(ctx context.Context, log []domain.Notification) error
}

type archiver interface {
	Archive(ctx context.Context, batch []domain.Notification) (string, error)
}

type service struct {
	store    logStore
	archiver archiver // nil disables archival
	maxAge   time.Duration
}

func NewService(store logStore, arc archiver, maxAge time.Duration) Service {
	return &service{store: store, archiver: arc, maxAge: maxAge}
}

func (s *service) Prune(ctx context.Context) (int, error) {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.maxAge).UnixMilli()
	kept := make([]domain.Notification, 0, len(log))
	var expired []domain.Notification
	for i := range log {
		if log[i].Timestamp < cutoff {
			expired = append(expired, log[i])
		} else {
			kept = append(kept, log[i])
		}
	}
	if len(expired) == 0 {
		return 0, nil
	}

	// Archive before dropping so a failed upload never loses data.
	if s.archiver != nil {
		key, err := s.archiver.Archive(ctx, expired)
		if err != nil {
			return 0, err
		}
		slog.Info("archived expired notifications", "count", len(expired), "key", key)
	}

	if err := s.store.SaveAll(ctx, kept); err != nil {
		return 0, err
	}
	return len(expired), nil
}
