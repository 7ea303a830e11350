package audience

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-notify-api/internal/domain"
)

// Resolver decides whether a notification is visible to a reader. Two distinct
// policies govern the ambiguous cases: a missing referenced entity fails open
// (an orphaned event is an integrity gap to tolerate), while missing tenant
// routing fails closed (an unaddressed order event is a correctness bug
// surfaced as invisibility).
type Resolver struct {
	entities        domain.EntityLookup
	freshnessWindow time.Duration
}

func NewResolver(entities domain.EntityLookup, freshnessWindow time.Duration) *Resolver {
	return &Resolver{entities: entities, freshnessWindow: freshnessWindow}
}

// Visible applies, in order: the removal veto, specific-target match (subject
// only to entity-state suppression), role-audience match (subject to tenant
// routing, entity-state suppression, and the stockist freshness window), and
// finally the "all" audience wildcard (subject to tenant routing).
func (r *Resolver) Visible(ctx context.Context, n *domain.Notification, reader domain.Reader) bool {
	if n.RemovedByContains(reader.Identity) {
		return false
	}
	if n.TargetedAt(reader.Identity) {
		return r.entityStateAllows(ctx, n, reader.Role)
	}
	if n.AudienceContains(reader.Role) {
		if !tenantRouteAllows(n, reader) {
			return false
		}
		if !r.entityStateAllows(ctx, n, reader.Role) {
			return false
		}
		return r.freshnessAllows(ctx, n, reader)
	}
	if n.AudienceContains(domain.RoleAll) {
		return tenantRouteAllows(n, reader)
	}
	return false
}

// entityStateAllows is the dynamic suppression check for reminder kinds: the
// referenced entity's current status must still make the reminder relevant to
// the reader's role. Fails open when the entity cannot be found.
func (r *Resolver) entityStateAllows(ctx context.Context, n *domain.Notification, role string) bool {
	if !n.EventType.IsReminder() {
		return true
	}
	if r.entities == nil {
		return true
	}
	snap, err := r.entities.Lookup(ctx, n.EntityType, n.EntityID)
	if err != nil {
		slog.Warn("reminder references unknown entity, keeping it visible",
			"entity_type", n.EntityType, "entity_id", n.EntityID, "err", err)
		return true
	}
	return ExpiryStatusAllowed(role, snap.Status)
}

// ExpiryStatusAllowed reports whether a deadline reminder is still relevant
// for role given the entity's current status. Shared with the reminder
// upserter so visibility and upsert eligibility can never disagree.
func ExpiryStatusAllowed(role, status string) bool {
	switch role {
	case domain.RoleStockist:
		return status == domain.RequestStatusOpen || status == domain.RequestStatusProcessing
	case domain.RoleBuyerAgent:
		return status == domain.RequestStatusAssigned
	case domain.RoleSupplier:
		return status == domain.OrderStatusCreated || status == domain.OrderStatusInTransit
	default:
		// Creators keep seeing the reminder until the entity terminates.
		return !domain.TerminalStatus(status)
	}
}

// tenantRouteAllows enforces identity-level routing for the tenant-scoped
// role: supplier readers only see order events addressed to their tenant name.
// An order event without addressing is hidden from every supplier.
func tenantRouteAllows(n *domain.Notification, reader domain.Reader) bool {
	if reader.Role != domain.RoleSupplier || n.EntityType != domain.EntityOrder {
		return true
	}
	return n.AddressedTo != "" && n.AddressedTo == reader.Tenant
}

// freshnessAllows suppresses stale request events in stockist feeds: the
// request must still be Open or have been touched within the trailing window.
// Cancellations, updates and status changes are notable regardless of age and
// bypass the filter. Fails open when the entity cannot be found.
func (r *Resolver) freshnessAllows(ctx context.Context, n *domain.Notification, reader domain.Reader) bool {
	if reader.Role != domain.RoleStockist || n.EntityType != domain.EntityRequest {
		return true
	}
	switch n.EventType {
	case domain.EventEntityCancelled, domain.EventEntityUpdated, domain.EventEntityStatusChanged:
		return true
	}
	if r.entities == nil {
		return true
	}
	snap, err := r.entities.Lookup(ctx, n.EntityType, n.EntityID)
	if err != nil {
		slog.Warn("freshness check could not resolve entity, keeping notification visible",
			"entity_type", n.EntityType, "entity_id", n.EntityID, "err", err)
		return true
	}
	if snap.Status == domain.RequestStatusOpen {
		return true
	}
	return time.Since(snap.UpdatedAt) <= r.freshnessWindow
}
