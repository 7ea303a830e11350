package domain

// EventInput carries the fields common to every publish call. Creator is the
// identity the entity ultimately belongs to; it becomes a specific target and
// the notification's originator.
type EventInput struct {
	TriggeredBy     string `json:"triggered_by" validate:"required"`
	TriggeredByRole string `json:"triggered_by_role" validate:"required"`
	EntityID        string `json:"entity_id" validate:"required"`
	EntityNumber    string `json:"entity_number" validate:"required"`
	Creator         string `json:"creator,omitempty"`
}

// RequestUpdatedInput adds the ordered field diffs rendered into the message.
type RequestUpdatedInput struct {
	EventInput
	Changes []FieldChange `json:"changes" validate:"required,min=1"`
}

// RequestReviewedInput adds the review decision.
type RequestReviewedInput struct {
	EventInput
	Decision string `json:"decision" validate:"required,oneof=approved rejected"`
}

// OrderEventInput adds tenant routing for order events. Supplier is the
// addressed tenant name; SupplierID rides along as display metadata.
type OrderEventInput struct {
	EventInput
	Supplier   string `json:"supplier" validate:"required"`
	SupplierID string `json:"supplier_id,omitempty"`
}

// OrderStatusChangedInput adds the status transition.
type OrderStatusChangedInput struct {
	OrderEventInput
	OldStatus string `json:"old_status" validate:"required"`
	NewStatus string `json:"new_status" validate:"required"`
}
