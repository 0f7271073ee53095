package notification

import (
	"time"

	"github.com/google/uuid"
)

// Kind labels what happened; clients use it to pick an icon and a route.
type Kind string

const (
	KindRentalCreated    Kind = "rental_created"
	KindRentalPaid       Kind = "rental_paid"
	KindRentalExpired    Kind = "rental_expired"
	KindRentalCancelled  Kind = "rental_cancelled"
	KindDelivery         Kind = "rental_delivery"
	KindReturn           Kind = "rental_return"
	KindRentalFinalized  Kind = "rental_finalized"
	KindIncidentReported Kind = "incident_reported"
	KindIncidentResolved Kind = "incident_resolved"
	KindCoordination     Kind = "delivery_coordination"
	KindChatMessage      Kind = "chat_message"
)

// Notification is one in-app inbox entry. Metadata carries the rental id
// and the event key used for duplicate suppression.
type Notification struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      Kind
	Title     string
	Body      string
	Metadata  map[string]any
	Read      bool
	CreatedAt time.Time
}

// New builds an unread notification. eventKey must be unique per business
// event and recipient; a second insert with the same key is dropped.
func New(userID uuid.UUID, kind Kind, title, body, eventKey string, rentalID uuid.UUID, now time.Time) *Notification {
	return &Notification{
		ID:     uuid.New(),
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
		Metadata: map[string]any{
			"rental_id": rentalID.String(),
			"event_key": eventKey,
		},
		CreatedAt: now,
	}
}

// EventKey returns the dedup key or "" when the metadata lacks one.
func (n *Notification) EventKey() string {
	if n.Metadata == nil {
		return ""
	}
	if k, ok := n.Metadata["event_key"].(string); ok {
		return k
	}
	return ""
}
