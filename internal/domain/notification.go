package domain

import "time"

// FieldChange is a single field-level diff carried by update events for audit
// display.
type FieldChange struct {
	Field    string `json:"field"`
	OldValue string `json:"old_value"`
	NewValue string `json:"new_value"`
}

// Notification is one recorded event in the log, including its routing and
// per-reader read/removal state. Records are append-only except for growth of
// ReadBy/RemovedBy; reminders are replaced wholesale via delete-then-insert.
type Notification struct {
	ID              string        `json:"id"`
	EventType       EventType     `json:"event_type"`
	Timestamp       int64         `json:"timestamp"` // epoch milliseconds, feed ordering key
	TriggeredBy     string        `json:"triggered_by"`
	TriggeredByRole string        `json:"triggered_by_role"`
	EntityType      EntityType    `json:"entity_type"`
	EntityID        string        `json:"entity_id"`
	EntityNumber    string        `json:"entity_number"`
	Title           string        `json:"title"`
	Message         string        `json:"message"`
	TargetAudience  []string      `json:"target_audience"`
	SpecificTargets []string      `json:"specific_targets,omitempty"`
	AddressedTo     string        `json:"addressed_to,omitempty"`
	Changes         []FieldChange `json:"changes,omitempty"`
	// Metadata is a display/grouping side channel (e.g. supplier id). Routing
	// never consults it.
	Metadata   map[string]string `json:"metadata,omitempty"`
	ReadBy     []string          `json:"read_by"`
	RemovedBy  []string          `json:"removed_by"`
	Originator string            `json:"originator,omitempty"`
}

// CreatedAt returns the creation instant derived from the millisecond timestamp.
func (n *Notification) CreatedAt() time.Time {
	return time.UnixMilli(n.Timestamp)
}

// AudienceContains reports whether role is in the notification's target audience.
func (n *Notification) AudienceContains(role string) bool {
	return containsString(n.TargetAudience, role)
}

// TargetedAt reports whether identity is a specific (role-independent) target.
func (n *Notification) TargetedAt(identity string) bool {
	return containsString(n.SpecificTargets, identity)
}

// ReadByContains reports whether identity has marked the notification read.
func (n *Notification) ReadByContains(identity string) bool {
	return containsString(n.ReadBy, identity)
}

// RemovedByContains reports whether identity has locally dismissed the notification.
func (n *Notification) RemovedByContains(identity string) bool {
	return containsString(n.RemovedBy, identity)
}

// MarkReadBy adds identity to ReadBy. Idempotent; reports whether the set grew.
func (n *Notification) MarkReadBy(identity string) bool {
	if n.ReadByContains(identity) {
		return false
	}
	n.ReadBy = append(n.ReadBy, identity)
	return true
}

// MarkRemovedBy adds identity to RemovedBy. Idempotent; reports whether the set grew.
func (n *Notification) MarkRemovedBy(identity string) bool {
	if n.RemovedByContains(identity) {
		return false
	}
	n.RemovedBy = append(n.RemovedBy, identity)
	return true
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
