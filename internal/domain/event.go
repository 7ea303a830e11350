package domain

// EventType is the closed set of event kinds the engine records. Routing and
// suppression switch on these values, so new kinds must be added here and in
// the audience resolver together.
type EventType string

const (
	EventEntityCreated       EventType = "entity_created"
	EventEntityUpdated       EventType = "entity_updated"
	EventEntityCancelled     EventType = "entity_cancelled"
	EventEntityStatusChanged EventType = "entity_status_changed"
	EventEntityViewed        EventType = "entity_viewed"
	EventEntityReviewed      EventType = "entity_reviewed"
	EventEntityConverted     EventType = "entity_converted"
	EventArrivalRecorded     EventType = "arrival_recorded"
	EventEntityClosed        EventType = "entity_closed"

	// Derived (reminder) kinds, created only by the reminder upserter.
	EventEntityExpiring    EventType = "entity_expiring"
	EventEntityETAReminder EventType = "entity_eta_reminder"
)

// IsReminder reports whether t is a derived, deadline-driven kind subject to
// upsert/retract semantics and dynamic status suppression.
func (t EventType) IsReminder() bool {
	return t == EventEntityExpiring || t == EventEntityETAReminder
}

// Review decisions carried by entity_reviewed events.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)
