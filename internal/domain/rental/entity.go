package rental

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/article"
	"lendhub/internal/pkg/errs"
)

const maxChecklistLen = 800

// Rental is the central aggregate: a booked interval of an article between
// an owner and a renter, with a pricing snapshot, a deposit held in a
// simulated escrow, OTP handover codes and a delivery coordination record.
//
// Transition methods return changed=false for idempotent no-ops (the call
// was legal but the rental is already at or beyond the target state) and a
// typed error when the transition is not allowed at all. Every effective
// transition appends audit events, collected via TakeEvents.
type Rental struct {
	ID        uuid.UUID
	ArticleID uuid.UUID
	RenterID  uuid.UUID
	OwnerID   uuid.UUID

	Interval  Interval
	PriceUnit article.PriceUnit
	UnitPrice Money
	Units     int
	Subtotal  Money
	Deposit   Money

	Status    Status
	Delivered bool
	Returned  bool

	PaidAt            *time.Time
	DeliveredAt       *time.Time
	ReturnedAt        *time.Time
	DepositReleased   bool
	DepositReleasedAt *time.Time

	// Set when the cancellation was a lazy payment expiry; drives the
	// "expired" public state without widening the stored enum.
	ExpiredPayment bool

	HandoverCode      string
	ReturnCode        string
	DeliveryChecklist string
	ReturnChecklist   string

	Coordination Coordination

	CreatedAt time.Time
	UpdatedAt time.Time

	pending []Event
}

// New builds a pending-payment rental with the article's price and deposit
// snapshotted so later catalog edits cannot alter the booking.
func New(a *article.Article, renterID uuid.UUID, iv Interval, now time.Time) (*Rental, error) {
	if a.OwnerID == renterID {
		return nil, errs.ErrOwnArticle
	}
	if !a.Rentable() {
		return nil, errs.ErrArticleUnavailable
	}

	units, err := UnitsFor(a.PriceUnit, iv)
	if err != nil {
		return nil, err
	}

	unitPrice := NewMoney(a.PriceCents)
	r := &Rental{
		ID:        uuid.New(),
		ArticleID: a.ID,
		RenterID:  renterID,
		OwnerID:   a.OwnerID,
		Interval:  iv,
		PriceUnit: a.PriceUnit,
		UnitPrice: unitPrice,
		Units:     units,
		Subtotal:  unitPrice.Mul(units),
		Deposit:   NewMoney(a.DepositCents),
		Status:    StatusPendingPayment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.record(EventCreated, now, nil)
	return r, nil
}

func (r *Rental) IsRenter(userID uuid.UUID) bool { return r.RenterID == userID }
func (r *Rental) IsOwner(userID uuid.UUID) bool  { return r.OwnerID == userID }

func (r *Rental) IsParticipant(userID uuid.UUID) bool {
	return r.IsRenter(userID) || r.IsOwner(userID)
}

// Counterpart returns the other participant.
func (r *Rental) Counterpart(userID uuid.UUID) uuid.UUID {
	if r.IsRenter(userID) {
		return r.OwnerID
	}
	return r.RenterID
}

// PublicState derives the client-facing label from the stored status plus
// the handover flags and the expiry marker.
func (r *Rental) PublicState() PublicState {
	switch r.Status {
	case StatusInUse:
		if r.Returned {
			return PublicReturned
		}
		return PublicInUse
	case StatusCompleted:
		return PublicFinalized
	case StatusIncident:
		return PublicIncident
	case StatusCancelled:
		if r.ExpiredPayment {
			return PublicExpired
		}
		return PublicCancelled
	case StatusPaid:
		return PublicPaid
	case StatusConfirmed:
		return PublicConfirmed
	default:
		return PublicPendingPayment
	}
}

// PaymentOccurred reports whether the simulated payment ever went through,
// including on rentals cancelled afterwards.
func (r *Rental) PaymentOccurred() bool {
	return r.PaidAt != nil
}

// Expirable reports whether the lazy payment-expiry should fire.
func (r *Rental) Expirable(now time.Time, ttl time.Duration) bool {
	return r.Status == StatusPendingPayment && now.Sub(r.CreatedAt) > ttl
}

// Expire cancels an unpaid rental that outlived the payment window. Safe
// to race: the second caller sees changed=false.
func (r *Rental) Expire(now time.Time) bool {
	if r.Status != StatusPendingPayment {
		return false
	}
	r.Status = StatusCancelled
	r.ExpiredPayment = true
	r.touch(now)
	r.record(EventPaymentExpired, now, nil)
	return true
}

// Pay moves pending_payment to paid and mints both OTP codes exactly once.
func (r *Rental) Pay(now time.Time) (bool, error) {
	switch r.Status {
	case StatusPendingPayment:
	case StatusPaid, StatusConfirmed, StatusInUse, StatusCompleted, StatusIncident:
		return false, nil
	default:
		return false, errs.ErrInvalidState
	}

	r.Status = StatusPaid
	at := now
	r.PaidAt = &at
	if r.HandoverCode == "" {
		r.HandoverCode = GenerateOTP()
	}
	if r.ReturnCode == "" {
		r.ReturnCode = GenerateOTP()
	}
	r.touch(now)
	r.record(EventPaid, now, nil)
	return true, nil
}

// Cancel applies the party-specific guards of the state machine and
// returns the simulated refund. Owners must give a note; admins may cancel
// any non-terminal rental.
func (r *Rental) Cancel(party Party, note string, now time.Time) (Money, bool, error) {
	if r.Status == StatusCancelled {
		return NewMoney(0), false, nil
	}

	switch party {
	case PartyRenter:
		if r.Status != StatusPendingPayment && r.Status != StatusPaid && r.Status != StatusConfirmed {
			return Money{}, false, errs.ErrInvalidState
		}
	case PartyOwner:
		if r.Status != StatusPaid && r.Status != StatusConfirmed {
			return Money{}, false, errs.ErrInvalidState
		}
		if strings.TrimSpace(note) == "" {
			return Money{}, false, errs.ErrNoteRequired
		}
	case PartyAdmin:
		if r.Status == StatusCompleted {
			return Money{}, false, errs.ErrInvalidState
		}
	default:
		return Money{}, false, errs.ErrInvalidState
	}

	refund := CancellationRefund(r.Status, r.Subtotal, r.Deposit)
	r.Status = StatusCancelled
	r.touch(now)
	r.record(EventCancelled, now, map[string]any{
		"by":           string(party),
		"note":         strings.TrimSpace(note),
		"refund_cents": refund.Cents(),
	})
	return refund, true, nil
}

// ConfirmDelivery is the owner's non-OTP handover confirmation: paid moves
// to confirmed and the renter still marks usage explicitly.
func (r *Rental) ConfirmDelivery(now time.Time) (bool, error) {
	switch r.Status {
	case StatusPaid:
	case StatusConfirmed, StatusInUse, StatusCompleted, StatusIncident:
		return false, nil
	default:
		return false, errs.ErrInvalidState
	}

	r.Status = StatusConfirmed
	r.Delivered = true
	at := now
	r.DeliveredAt = &at
	r.touch(now)
	r.record(EventDeliveryConfirmed, now, nil)
	return true, nil
}

// ConfirmDeliveryOTP validates the handover code and jumps straight to
// in_use, skipping the separate confirmed step of the non-OTP path.
func (r *Rental) ConfirmDeliveryOTP(code, checklist string, now time.Time) error {
	if r.PublicState().Closed() {
		return errs.ErrInvalidState
	}
	if r.Status != StatusPaid && r.Status != StatusConfirmed {
		return errs.ErrInvalidState
	}
	if !ValidOTPFormat(code) || r.HandoverCode == "" || code != r.HandoverCode {
		return errs.ErrBadOTP
	}
	cl, err := normalizeChecklist(checklist)
	if err != nil {
		return err
	}
	if cl != "" {
		r.DeliveryChecklist = cl
	}

	r.Delivered = true
	at := now
	r.DeliveredAt = &at
	r.Status = StatusInUse
	r.touch(now)
	r.record(EventDeliveryConfirmed, now, map[string]any{"otp": true})
	r.record(EventInUse, now, nil)
	return nil
}

// MarkInUse is the renter's acknowledgement on the non-OTP path.
func (r *Rental) MarkInUse(now time.Time) (bool, error) {
	switch r.Status {
	case StatusConfirmed:
	case StatusInUse, StatusCompleted, StatusIncident:
		return false, nil
	default:
		return false, errs.ErrInvalidState
	}

	r.Status = StatusInUse
	r.touch(now)
	r.record(EventInUse, now, nil)
	return true, nil
}

// MarkReturned sets the returned flag without changing the primary state.
func (r *Rental) MarkReturned(now time.Time) (bool, error) {
	if r.Status != StatusInUse {
		return false, errs.ErrInvalidState
	}
	if r.Returned {
		return false, nil
	}

	r.Returned = true
	at := now
	r.ReturnedAt = &at
	r.touch(now)
	r.record(EventReturned, now, nil)
	return true, nil
}

// ConfirmReturnOTP validates the return code; unlike delivery it refuses a
// repeat once the flag is set.
func (r *Rental) ConfirmReturnOTP(code, checklist string, now time.Time) error {
	if r.PublicState().Closed() {
		return errs.ErrInvalidState
	}
	if r.Status != StatusInUse || r.Returned {
		return errs.ErrInvalidState
	}
	if !ValidOTPFormat(code) || r.ReturnCode == "" || code != r.ReturnCode {
		return errs.ErrBadOTP
	}
	cl, err := normalizeChecklist(checklist)
	if err != nil {
		return err
	}
	if cl != "" {
		r.ReturnChecklist = cl
	}

	r.Returned = true
	at := now
	r.ReturnedAt = &at
	r.touch(now)
	r.record(EventReturned, now, map[string]any{"otp": true})
	return nil
}

// Finalize completes a returned rental and releases the deposit.
func (r *Rental) Finalize(now time.Time) (bool, error) {
	if r.Status == StatusCompleted && r.DepositReleased {
		return false, nil
	}
	if r.Status != StatusInUse || !r.Returned {
		return false, errs.ErrInvalidState
	}

	r.Status = StatusCompleted
	r.DepositReleased = true
	at := now
	r.DepositReleasedAt = &at
	r.touch(now)
	r.record(EventFinalized, now, nil)
	r.record(EventDepositReleased, now, map[string]any{"amount_cents": r.Deposit.Cents()})
	return true, nil
}

// ReportIncident flips any non-completed rental into the incident state.
func (r *Rental) ReportIncident(now time.Time) error {
	if r.Status == StatusCompleted {
		return errs.ErrInvalidState
	}
	r.Status = StatusIncident
	r.touch(now)
	r.record(EventIncidentReported, now, nil)
	return nil
}

// ResolveIncident closes the incident: the rental completes, and the
// deposit is released only on a full release decision. The resolution
// timestamp is kept even when money is retained, for the timeline.
func (r *Rental) ResolveIncident(decision IncidentDecision, retained Money, now time.Time) error {
	if r.Status != StatusIncident {
		return errs.ErrInvalidState
	}

	r.Status = StatusCompleted
	r.DepositReleased = decision == DecisionRelease
	at := now
	r.DepositReleasedAt = &at
	r.touch(now)
	r.record(EventIncidentResolved, now, map[string]any{
		"decision":       string(decision),
		"retained_cents": retained.Cents(),
	})
	return nil
}

// CodesVisibleTo gates the OTP pair: renter only, and only while the
// rental is open and past payment.
func (r *Rental) CodesVisibleTo(userID uuid.UUID) bool {
	if !r.IsRenter(userID) {
		return false
	}
	ps := r.PublicState()
	return !ps.Closed() && ps != PublicPendingPayment
}

// ChatEnabled mirrors the chat gate: participants only, rental open and
// past payment.
func (r *Rental) ChatEnabled(userID uuid.UUID) bool {
	if !r.IsParticipant(userID) {
		return false
	}
	ps := r.PublicState()
	return !ps.Closed() && ps != PublicPendingPayment
}

// TakeEvents drains the audit events accumulated by transitions since the
// last call; the caller persists them in the same transaction.
func (r *Rental) TakeEvents() []Event {
	evs := r.pending
	r.pending = nil
	return evs
}

func (r *Rental) record(t EventType, at time.Time, payload map[string]any) {
	r.pending = append(r.pending, Event{Type: t, At: at, Payload: payload})
}

func (r *Rental) touch(now time.Time) {
	r.UpdatedAt = now
}

func normalizeChecklist(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) > maxChecklistLen {
		return "", errs.Category(errs.New("checklist exceeds 800 characters"), errs.ErrValidation)
	}
	return s, nil
}
