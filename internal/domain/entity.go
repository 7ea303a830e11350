package domain

import (
	"context"
	"time"
)

// EntityType names the two domain object kinds notifications reference.
type EntityType string

const (
	EntityRequest EntityType = "request"
	EntityOrder   EntityType = "order"
)

// Request lifecycle statuses as stored by the host CRUD layer.
const (
	RequestStatusOpen       = "Open"
	RequestStatusProcessing = "Processing"
	RequestStatusAssigned   = "Assigned"
	RequestStatusConverted  = "Converted"
	RequestStatusCompleted  = "Completed"
	RequestStatusCancelled  = "Cancelled"
)

// Order lifecycle statuses.
const (
	OrderStatusCreated   = "Created"
	OrderStatusInTransit = "In Transit"
	OrderStatusArrived   = "Arrived"
	OrderStatusClosed    = "Closed"
	OrderStatusCancelled = "Cancelled"
)

// TerminalStatus reports whether status ends the entity's lifecycle.
func TerminalStatus(status string) bool {
	switch status {
	case RequestStatusCompleted, RequestStatusCancelled, OrderStatusClosed:
		return true
	}
	return false
}

// EntitySnapshot is the current state of a referenced entity, as reported by
// the host record stores. The engine never writes entities; it only reads
// enough of them to re-check visibility and reminder eligibility.
type EntitySnapshot struct {
	Number    string    `json:"number" dynamodbav:"number"`
	Status    string    `json:"status" dynamodbav:"status"`
	Deadline  time.Time `json:"deadline" dynamodbav:"deadline"`
	Creator   string    `json:"creator" dynamodbav:"created_by"`
	UpdatedAt time.Time `json:"updated_at" dynamodbav:"updated_at"`
	// Supplier is the tenant name an order is addressed to; empty for requests.
	Supplier string `json:"supplier,omitempty" dynamodbav:"supplier"`
}

// EntityLookup resolves the current snapshot of a referenced entity.
// Implementations return ErrNotFound when the entity does not exist.
type EntityLookup interface {
	Lookup(ctx context.Context, entityType EntityType, entityID string) (*EntitySnapshot, error)
}

// NameResolver maps an identity to its display name. Cosmetic only: it feeds
// message rendering, never routing.
type NameResolver interface {
	DisplayName(ctx context.Context, identity string) string
}
