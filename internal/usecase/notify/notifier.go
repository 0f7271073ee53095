package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"lendhub/internal/domain/notification"
	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/usecase/shared"
)

// Notifier turns committed rental transitions into in-app notifications.
// Dispatch runs outside the business transaction and is best effort: a
// failed insert is logged, never surfaced, and the event key dedup makes
// redelivery after a retry harmless.
type Notifier struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewNotifier(uow shared.UnitOfWork, clk clock.Clock) *Notifier {
	return &Notifier{uow: uow, clock: clk}
}

func (n *Notifier) RentalEvents(ctx context.Context, r *rental.Rental, events []rental.Event) {
	var items []*notification.Notification
	for _, ev := range events {
		items = append(items, n.forEvent(r, ev)...)
	}
	n.Dispatch(ctx, items...)
}

func (n *Notifier) Dispatch(ctx context.Context, items ...*notification.Notification) {
	if len(items) == 0 {
		return
	}
	err := n.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, item := range items {
			if _, err := tx.Notifications().Insert(ctx, item); err != nil {
				if infra.IsKind(err, infra.KindUnavailable) {
					return nil
				}
				slog.Warn("notification insert failed",
					"user_id", item.UserID.String(),
					"kind", string(item.Kind),
					"error", err.Error())
			}
		}
		return nil
	})
	if err != nil {
		slog.Warn("notification dispatch failed", "error", err.Error())
	}
}

// ChatMessage notifies the counterpart about one new message.
func (n *Notifier) ChatMessage(ctx context.Context, r *rental.Rental, senderID, messageID uuid.UUID) {
	recipient := r.Counterpart(senderID)
	key := fmt.Sprintf("%s:chat:%s", r.ID, messageID)
	n.Dispatch(ctx, notification.New(
		recipient, notification.KindChatMessage,
		"New message",
		"You have a new message about your rental.",
		key, r.ID, n.clock.Now(),
	))
}

// payloadCents reads an integer amount out of an event payload; events
// that went through jsonb come back with float64 numbers.
func payloadCents(payload map[string]any, key string) int64 {
	switch v := payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func (n *Notifier) forEvent(r *rental.Rental, ev rental.Event) []*notification.Notification {
	key := fmt.Sprintf("%s:%s", r.ID, ev.Type)
	switch ev.Type {
	case rental.EventCoordinationProposed, rental.EventCoordinationAccepted, rental.EventCoordinationConfirmed:
		// Coordination repeats legitimately; scope the dedup key to the
		// occurrence instead of the rental lifetime.
		key = fmt.Sprintf("%s:%d", key, ev.At.UnixNano())
	}
	build := func(userID uuid.UUID, kind notification.Kind, title, body string) *notification.Notification {
		return notification.New(userID, kind, title, body, key, r.ID, ev.At)
	}

	switch ev.Type {
	case rental.EventCreated:
		return []*notification.Notification{
			build(r.OwnerID, notification.KindRentalCreated,
				"New rental request", "Someone reserved your article, pending payment."),
		}
	case rental.EventPaid:
		return []*notification.Notification{
			build(r.OwnerID, notification.KindRentalPaid,
				"Rental paid", "The renter paid; coordinate the handover."),
		}
	case rental.EventPaymentExpired:
		return []*notification.Notification{
			build(r.RenterID, notification.KindRentalExpired,
				"Reservation expired", "Your reservation expired before payment."),
			build(r.OwnerID, notification.KindRentalExpired,
				"Reservation expired", "A reservation of your article expired unpaid."),
		}
	case rental.EventDeliveryConfirmed:
		return []*notification.Notification{
			build(r.RenterID, notification.KindDelivery,
				"Handover confirmed", "The owner confirmed the handover."),
		}
	case rental.EventInUse:
		return []*notification.Notification{
			build(r.OwnerID, notification.KindDelivery,
				"Rental in use", "The renter confirmed the article is in use."),
		}
	case rental.EventReturned:
		return []*notification.Notification{
			build(r.OwnerID, notification.KindReturn,
				"Article returned", "The renter returned the article; finalize to release the deposit."),
		}
	case rental.EventFinalized:
		return []*notification.Notification{
			build(r.RenterID, notification.KindRentalFinalized,
				"Rental finalized", "The rental is complete."),
			build(r.OwnerID, notification.KindRentalFinalized,
				"Rental finalized", "The rental is complete."),
		}
	case rental.EventDepositReleased:
		amount := payloadCents(ev.Payload, "amount_cents")
		released := build(r.RenterID, notification.KindRentalFinalized,
			"Deposit released",
			fmt.Sprintf("Your deposit of %s was released.", rental.NewMoney(amount)))
		released.Metadata["amount_cents"] = amount
		return []*notification.Notification{released}
	case rental.EventIncidentReported:
		return []*notification.Notification{
			build(r.RenterID, notification.KindIncidentReported,
				"Incident reported", "An incident was reported on your rental."),
			build(r.OwnerID, notification.KindIncidentReported,
				"Incident reported", "An incident was reported on your rental."),
		}
	case rental.EventIncidentResolved:
		return []*notification.Notification{
			build(r.RenterID, notification.KindIncidentResolved,
				"Incident resolved", "The incident on your rental was resolved."),
			build(r.OwnerID, notification.KindIncidentResolved,
				"Incident resolved", "The incident on your rental was resolved."),
		}
	case rental.EventCancelled:
		return []*notification.Notification{
			build(r.RenterID, notification.KindRentalCancelled,
				"Rental cancelled", "The rental was cancelled."),
			build(r.OwnerID, notification.KindRentalCancelled,
				"Rental cancelled", "The rental was cancelled."),
		}
	case rental.EventCoordinationProposed:
		return []*notification.Notification{
			build(r.RenterID, notification.KindCoordination,
				"Handover windows proposed", "The owner proposed delivery windows; pick one."),
		}
	case rental.EventCoordinationAccepted:
		return []*notification.Notification{
			build(r.OwnerID, notification.KindCoordination,
				"Handover window chosen", "The renter chose a delivery window; confirm it."),
		}
	case rental.EventCoordinationConfirmed:
		return []*notification.Notification{
			build(r.RenterID, notification.KindCoordination,
				"Handover confirmed", "The owner confirmed the delivery window."),
		}
	default:
		return nil
	}
}
