package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-notify-api/internal/application/audience"
	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/pkg/id"
)

// Service maintains derived deadline reminders. Each (entity, target) key has
// at most one live reminder, enforced by a deterministic id and a
// remove-then-insert cycle on every recomputation.
type Service interface {
	// Upsert recomputes the reminder for one key: replaces it with a fresh one
	// while the deadline is inside the lookahead window and the entity status
	// is still eligible for the target, retracts it otherwise.
	Upsert(ctx context.Context, entityType domain.EntityType, entityID, target string) error

	// SyncEntity runs Upsert for every target that could plausibly care about
	// the entity. Publishers call this after every append so reminders track
	// the entity's latest deadline and status.
	SyncEntity(ctx context.Context, entityType domain.EntityType, entityID string) error
}

type logStore interface {
	LoadAll(ctx context.Context) ([]domain.Notification, error)
	SaveAll(ctx context.Context, log []domain.Notification) error
}

type service struct {
	store     logStore
	entities  domain.EntityLookup
	lookahead time.Duration
}

func NewService(store logStore, entities domain.EntityLookup, lookahead time.Duration) Service {
	return &service{store: store, entities: entities, lookahead: lookahead}
}

func (s *service) Upsert(ctx context.Context, entityType domain.EntityType, entityID, target string) error {
	snap, err := s.lookup(ctx, entityType, entityID)
	if err != nil {
		return err
	}

	var fresh *domain.Notification
	if snap != nil && s.applicable(snap, target) {
		fresh = s.build(entityType, entityID, target, snap)
	}

	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return err
	}

	key := id.Reminder(entityID, target)
	kept := log[:0]
	removed := false
	for i := range log {
		if log[i].ID == key {
			removed = true
			continue
		}
		kept = append(kept, log[i])
	}
	if fresh == nil && !removed {
		return nil
	}
	if fresh != nil {
		kept = append(kept, *fresh)
	}
	return s.store.SaveAll(ctx, kept)
}

func (s *service) SyncEntity(ctx context.Context, entityType domain.EntityType, entityID string) error {
	snap, err := s.lookup(ctx, entityType, entityID)
	if err != nil {
		return err
	}

	var targets []string
	switch entityType {
	case domain.EntityRequest:
		targets = []string{domain.RoleStockist, domain.RoleBuyerAgent}
	case domain.EntityOrder:
		targets = []string{domain.RoleSupplier}
	}
	if snap != nil && snap.Creator != "" {
		targets = append(targets, snap.Creator)
	}

	for _, target := range targets {
		if err := s.Upsert(ctx, entityType, entityID, target); err != nil {
			return err
		}
	}
	return nil
}

// lookup resolves the entity snapshot. A missing entity or an absent lookup
// backend yields a nil snapshot, which retracts any live reminder for the key.
func (s *service) lookup(ctx context.Context, entityType domain.EntityType, entityID string) (*domain.EntitySnapshot, error) {
	if s.entities == nil {
		return nil, nil
	}
	snap, err := s.entities.Lookup(ctx, entityType, entityID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %s %s: %w", entityType, entityID, err)
	}
	return snap, nil
}

// applicable reports whether a reminder should currently exist for the key:
// the entity has a deadline, the deadline is ahead but inside the lookahead
// window, and the status still makes the reminder relevant to the target.
func (s *service) applicable(snap *domain.EntitySnapshot, target string) bool {
	if snap.Deadline.IsZero() {
		return false
	}
	until := time.Until(snap.Deadline)
	if until <= 0 || until > s.lookahead {
		return false
	}
	return audience.ExpiryStatusAllowed(roleOf(target), snap.Status)
}

// roleOf maps a target to the role used for eligibility: role targets map to
// themselves, identity targets (entity creators) to the default creator rule.
func roleOf(target string) string {
	for _, role := range domain.ReaderRoles {
		if target == role {
			return role
		}
	}
	return ""
}

func (s *service) build(entityType domain.EntityType, entityID, target string, snap *domain.EntitySnapshot) *domain.Notification {
	daysLeft := int(time.Until(snap.Deadline).Hours()/24) + 1

	n := &domain.Notification{
		ID:              id.Reminder(entityID, target),
		Timestamp:       time.Now().UnixMilli(),
		TriggeredBy:     domain.SystemIdentity,
		TriggeredByRole: domain.RoleSystem,
		EntityType:      entityType,
		EntityID:        entityID,
		EntityNumber:    snap.Number,
		ReadBy:          []string{},
		RemovedBy:       []string{},
		Originator:      snap.Creator,
	}

	switch entityType {
	case domain.EntityRequest:
		n.EventType = domain.EventEntityExpiring
		n.Title = "Request expiring soon"
		n.Message = fmt.Sprintf("Request %s expires in %s", snap.Number, daysPhrase(daysLeft))
	case domain.EntityOrder:
		n.EventType = domain.EventEntityETAReminder
		n.Title = "Order arrival approaching"
		n.Message = fmt.Sprintf("Order %s is due to arrive in %s", snap.Number, daysPhrase(daysLeft))
		n.AddressedTo = snap.Supplier
	}

	if roleOf(target) != "" {
		n.TargetAudience = []string{target}
	} else {
		n.SpecificTargets = []string{target}
	}
	return n
}

func daysPhrase(days int) string {
	if days <= 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
