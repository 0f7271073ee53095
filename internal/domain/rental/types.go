package rental

import (
	"time"
)

// Status is the stored state machine. It is deliberately small; richer
// client-facing labels are derived in PublicState from the status plus the
// handover flags and the event history.
type Status string

const (
	StatusPendingPayment Status = "pending_payment"
	StatusPaid           Status = "paid"
	StatusConfirmed      Status = "confirmed"
	StatusInUse          Status = "in_use"
	StatusIncident       Status = "incident"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
)

// ActiveStatuses are the states that reserve the article's calendar.
var ActiveStatuses = []Status{
	StatusPendingPayment,
	StatusPaid,
	StatusConfirmed,
	StatusInUse,
}

// PublicState is the derived, client-facing label.
type PublicState string

const (
	PublicPendingPayment PublicState = "pending_payment"
	PublicPaid           PublicState = "paid"
	PublicConfirmed      PublicState = "confirmed"
	PublicInUse          PublicState = "in_use"
	PublicReturned       PublicState = "returned"
	PublicIncident       PublicState = "incident"
	PublicFinalized      PublicState = "finalized"
	PublicCancelled      PublicState = "cancelled"
	PublicExpired        PublicState = "expired"
)

func (s PublicState) Closed() bool {
	return s == PublicCancelled || s == PublicExpired || s == PublicFinalized
}

// Party identifies who is acting on a rental.
type Party string

const (
	PartyRenter Party = "renter"
	PartyOwner  Party = "owner"
	PartyAdmin  Party = "admin"
)

// EventType keys the append-only audit log.
type EventType string

const (
	EventCreated               EventType = "created"
	EventPaid                  EventType = "paid"
	EventPaymentExpired        EventType = "payment_expired"
	EventDeliveryConfirmed     EventType = "delivery_confirmed"
	EventInUse                 EventType = "in_use"
	EventReturned              EventType = "returned"
	EventFinalized             EventType = "finalized"
	EventDepositReleased       EventType = "deposit_released"
	EventIncidentReported      EventType = "incident_reported"
	EventIncidentResolved      EventType = "incident_resolved"
	EventCancelled             EventType = "cancelled"
	EventCoordinationProposed  EventType = "coordination_proposed"
	EventCoordinationAccepted  EventType = "coordination_accepted"
	EventCoordinationConfirmed EventType = "coordination_confirmed"
)

// Event is one audit log entry. Payload is optional structured context
// (refund amounts, cancelling party, chosen windows).
type Event struct {
	Type    EventType
	At      time.Time
	Payload map[string]any
}

// IncidentDecision closes an incident.
type IncidentDecision string

const (
	DecisionRelease       IncidentDecision = "release"
	DecisionRetainPartial IncidentDecision = "retain_partial"
	DecisionRetainTotal   IncidentDecision = "retain_total"
)

func NewIncidentDecision(s string) (IncidentDecision, bool) {
	switch IncidentDecision(s) {
	case DecisionRelease, DecisionRetainPartial, DecisionRetainTotal:
		return IncidentDecision(s), true
	default:
		return "", false
	}
}
