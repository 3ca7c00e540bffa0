package models

import "time"

// PendingIntent records what the previous reply asked the user for.
type PendingIntent string

const (
	PendingNone             PendingIntent = ""
	PendingAwaitingLocation PendingIntent = "awaiting_location"
	PendingAwaitingOrderID  PendingIntent = "awaiting_order_id"
)

// ConversationState is the per-user dialogue record kept between turns.
type ConversationState struct {
	PendingIntent    PendingIntent     `json:"pendingIntent,omitempty"`
	SelectedLocation *Location         `json:"selectedLocation,omitempty"`
	DeliveryEstimate *DeliveryEstimate `json:"deliveryEstimate,omitempty"`
	UpdatedAt        time.Time         `json:"updatedAt,omitempty"`
}

func (s ConversationState) IsAwaiting(intent PendingIntent) bool {
	return intent != PendingNone && s.PendingIntent == intent
}

// IsEmpty reports whether the state carries nothing worth persisting.
func (s ConversationState) IsEmpty() bool {
	return s.PendingIntent == PendingNone && s.SelectedLocation == nil && s.DeliveryEstimate == nil
}

// Touch stamps the state before it is written back.
func (s *ConversationState) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
