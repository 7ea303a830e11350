package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-notify-api/internal/domain"
)

// Service composes the audience resolver with per-reader read/removal state to
// produce notification feeds.
type Service interface {
	Feed(ctx context.Context, reader domain.Reader) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, reader domain.Reader) (int, error)
	MarkRead(ctx context.Context, notificationID, identity string) error
	MarkAllRead(ctx context.Context, reader domain.Reader) error
	Remove(ctx context.Context, notificationID, identity string) error
}

type logStore interface {
	LoadAll(ctx context.Context) ([]domain.Notification, error)
	SaveAll(ctx context.Context, log []domain.Notification) error
}

type visibility interface {
	Visible(ctx context.Context, n *domain.Notification, reader domain.Reader) bool
}

type service struct {
	store    logStore
	resolver visibility
}

func NewService(store logStore, resolver visibility) Service {
	return &service{store: store, resolver: resolver}
}

// Feed returns the reader's visible notifications, newest first.
func (s *service) Feed(ctx context.Context, reader domain.Reader) ([]domain.Notification, error) {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]domain.Notification, 0, len(log))
	for i := range log {
		if s.resolver.Visible(ctx, &log[i], reader) {
			visible = append(visible, log[i])
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].Timestamp > visible[j].Timestamp
	})
	return visible, nil
}

func (s *service) UnreadCount(ctx context.Context, reader domain.Reader) (int, error) {
	visible, err := s.Feed(ctx, reader)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range visible {
		if !visible[i].ReadByContains(reader.Identity) {
			count++
		}
	}
	return count, nil
}

// MarkRead adds identity to the notification's read set. Idempotent: marking
// twice leaves the set unchanged and skips the second write.
func (s *service) MarkRead(ctx context.Context, notificationID, identity string) error {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range log {
		if log[i].ID != notificationID {
			continue
		}
		if !log[i].MarkReadBy(identity) {
			return nil
		}
		return s.store.SaveAll(ctx, log)
	}
	return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
}

// MarkAllRead marks every notification in the reader's current visible feed as
// read by them.
func (s *service) MarkAllRead(ctx context.Context, reader domain.Reader) error {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	changed := false
	for i := range log {
		if !s.resolver.Visible(ctx, &log[i], reader) {
			continue
		}
		if log[i].MarkReadBy(reader.Identity) {
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.SaveAll(ctx, log)
}

// Remove locally dismisses the notification for this identity only. Other
// readers keep seeing it.
func (s *service) Remove(ctx context.Context, notificationID, identity string) error {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}
	for i := range log {
		if log[i].ID != notificationID {
			continue
		}
		if !log[i].MarkRemovedBy(identity) {
			return nil
		}
		return s.store.SaveAll(ctx, log)
	}
	return fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
}
