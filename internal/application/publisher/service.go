package publisher

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-notify-api/internal/domain"
	"github.com/go-notify-api/internal/pkg/id"
)

// Service appends one notification per domain event. Constructors only format
// and route; whether an event should fire at all is the caller's decision, so
// nothing here rejects for business reasons.
//
// Every publish also resynchronizes reminders for the event's entity and, when
// a mirror is configured, forwards a best-effort copy to it.
type Service interface {
	RequestCreated(ctx context.Context, in domain.EventInput) (*domain.Notification, error)
	RequestUpdated(ctx context.Context, in domain.RequestUpdatedInput) (*domain.Notification, error)
	RequestViewed(ctx context.Context, in domain.EventInput) (*domain.Notification, error)
	RequestReviewed(ctx context.Context, in domain.RequestReviewedInput) (*domain.Notification, error)
	RequestCancelled(ctx context.Context, in domain.EventInput) (*domain.Notification, error)
	RequestConverted(ctx context.Context, in domain.EventInput) (*domain.Notification, error)
	OrderStatusChanged(ctx context.Context, in domain.OrderStatusChangedInput) (*domain.Notification, error)
	OrderArrivalRecorded(ctx context.Context, in domain.OrderEventInput) (*domain.Notification, error)
	OrderClosed(ctx context.Context, in domain.OrderEventInput) (*domain.Notification, error)
}

type logStore interface {
	LoadAll(ctx context.Context) ([]domain.Notification, error)
	SaveAll(ctx context.Context, log []domain.Notification) error
}

type reminderSyncer interface {
	SyncEntity(ctx context.Context, entityType domain.EntityType, entityID string) error
}

type eventMirror interface {
	Mirror(ctx context.Context, n *domain.Notification) error
}

type service struct {
	store     logStore
	reminders reminderSyncer
	mirror    eventMirror // nil when no topic is configured
	names     domain.NameResolver
}

// NewService wires the publisher. mirror and names may be nil; a nil names
// resolver renders raw identities.
func NewService(store logStore, reminders reminderSyncer, mirror eventMirror, names domain.NameResolver) Service {
	return &service{store: store, reminders: reminders, mirror: mirror, names: names}
}

func (s *service) RequestCreated(ctx context.Context, in domain.EventInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityCreated, domain.EntityRequest, in)
	n.TargetAudience = []string{domain.RoleStockist, domain.RoleBuyerAgent}
	n.Title = "New request"
	n.Message = s.actorName(ctx, in) + " created request " + in.EntityNumber
	return s.publish(ctx, n)
}

func (s *service) RequestUpdated(ctx context.Context, in domain.RequestUpdatedInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityUpdated, domain.EntityRequest, in.EventInput)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist, domain.RoleBuyerAgent}
	n.Changes = in.Changes
	n.Title = "Request updated"
	n.Message = s.actorName(ctx, in.EventInput) + " updated request " + in.EntityNumber + ": " + renderChanges(in.Changes)
	return s.publish(ctx, n)
}

func (s *service) RequestViewed(ctx context.Context, in domain.EventInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityViewed, domain.EntityRequest, in)
	// The creator is the only party who cares that their request was opened.
	n.TargetAudience = nil
	n.Title = "Request viewed"
	n.Message = s.actorName(ctx, in) + " viewed request " + in.EntityNumber
	return s.publish(ctx, n)
}

func (s *service) RequestReviewed(ctx context.Context, in domain.RequestReviewedInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityReviewed, domain.EntityRequest, in.EventInput)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist}
	n.Metadata = map[string]string{"decision": in.Decision}
	if in.Decision == domain.DecisionApproved {
		n.Title = "Request approved"
	} else {
		n.Title = "Request rejected"
	}
	n.Message = s.actorName(ctx, in.EventInput) + " " + in.Decision + " request " + in.EntityNumber
	return s.publish(ctx, n)
}

func (s *service) RequestCancelled(ctx context.Context, in domain.EventInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityCancelled, domain.EntityRequest, in)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist, domain.RoleBuyerAgent}
	n.Title = "Request cancelled"
	n.Message = s.actorName(ctx, in) + " cancelled request " + in.EntityNumber
	return s.publish(ctx, n)
}

func (s *service) RequestConverted(ctx context.Context, in domain.EventInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityConverted, domain.EntityRequest, in)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist, domain.RoleBuyerAgent}
	n.Title = "Request converted to order"
	n.Message = "Request " + in.EntityNumber + " was converted to an order"
	return s.publish(ctx, n)
}

func (s *service) OrderStatusChanged(ctx context.Context, in domain.OrderStatusChangedInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityStatusChanged, domain.EntityOrder, in.EventInput)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist, domain.RoleSupplier}
	n.AddressedTo = in.Supplier
	n.Changes = []domain.FieldChange{{Field: "status", OldValue: in.OldStatus, NewValue: in.NewStatus}}
	s.supplierMeta(n, in.OrderEventInput)
	n.Title = "Order status changed"
	n.Message = "Order " + in.EntityNumber + " moved from " + in.OldStatus + " to " + in.NewStatus
	return s.publish(ctx, n)
}

func (s *service) OrderArrivalRecorded(ctx context.Context, in domain.OrderEventInput) (*domain.Notification, error) {
	n := s.base(domain.EventArrivalRecorded, domain.EntityOrder, in.EventInput)
	n.TargetAudience = []string{domain.RoleStockist, domain.RoleSupplier}
	n.AddressedTo = in.Supplier
	s.supplierMeta(n, in)
	n.Title = "Arrival recorded"
	n.Message = s.actorName(ctx, in.EventInput) + " recorded arrival of order " + in.EntityNumber
	return s.publish(ctx, n)
}

func (s *service) OrderClosed(ctx context.Context, in domain.OrderEventInput) (*domain.Notification, error) {
	n := s.base(domain.EventEntityClosed, domain.EntityOrder, in.EventInput)
	n.TargetAudience = []string{domain.RoleSales, domain.RoleStockist, domain.RoleSupplier}
	n.AddressedTo = in.Supplier
	s.supplierMeta(n, in)
	n.Title = "Order closed"
	n.Message = "Order " + in.EntityNumber + " was closed"
	return s.publish(ctx, n)
}

// base fills the fields shared by every kind: fresh id, empty read/removed
// sets, and the creator as specific target and originator.
func (s *service) base(eventType domain.EventType, entityType domain.EntityType, in domain.EventInput) *domain.Notification {
	n := &domain.Notification{
		ID:              id.New(),
		EventType:       eventType,
		Timestamp:       time.Now().UnixMilli(),
		TriggeredBy:     in.TriggeredBy,
		TriggeredByRole: in.TriggeredByRole,
		EntityType:      entityType,
		EntityID:        in.EntityID,
		EntityNumber:    in.EntityNumber,
		ReadBy:          []string{},
		RemovedBy:       []string{},
		Originator:      in.Creator,
	}
	if in.Creator != "" {
		n.SpecificTargets = []string{in.Creator}
	}
	return n
}

func (s *service) supplierMeta(n *domain.Notification, in domain.OrderEventInput) {
	if in.SupplierID == "" {
		return
	}
	n.Metadata = map[string]string{"supplier_id": in.SupplierID}
}

func (s *service) publish(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	log, err := s.store.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	log = append(log, *n)
	if err := s.store.SaveAll(ctx, log); err != nil {
		return nil, err
	}

	if s.reminders != nil {
		if err := s.reminders.SyncEntity(ctx, n.EntityType, n.EntityID); err != nil {
			slog.Warn("reminder sync after publish failed",
				"entity_type", n.EntityType, "entity_id", n.EntityID, "err", err)
		}
	}
	if s.mirror != nil {
		if err := s.mirror.Mirror(ctx, n); err != nil {
			slog.Warn("event mirror failed", "notification_id", n.ID, "err", err)
		}
	}
	return n, nil
}

func (s *service) actorName(ctx context.Context, in domain.EventInput) string {
	if s.names == nil {
		return in.TriggeredBy
	}
	return s.names.DisplayName(ctx, in.TriggeredBy)
}

func renderChanges(changes []domain.FieldChange) string {
	out := ""
	for i, c := range changes {
		if i > 0 {
			out += ", "
		}
		out += c.Field + " changed from " + c.OldValue + " to " + c.NewValue
	}
	return out
}
