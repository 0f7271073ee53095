package rental

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/pkg/errs"
)

// DeliveryMode selects how the parties hand the article over.
type DeliveryMode string

const (
	ModeMeetup        DeliveryMode = "meetup"
	ModeDeliveryPoint DeliveryMode = "delivery_point"
)

func NewDeliveryMode(s string) (DeliveryMode, bool) {
	switch DeliveryMode(s) {
	case ModeMeetup, ModeDeliveryPoint:
		return DeliveryMode(s), true
	default:
		return "", false
	}
}

// WindowKind distinguishes the two negotiated legs of a handover: the
// initial delivery and the end-of-rental return.
type WindowKind string

const (
	WindowDelivery WindowKind = "delivery"
	WindowReturn   WindowKind = "return"
)

func NewWindowKind(s string) (WindowKind, bool) {
	switch WindowKind(s) {
	case WindowDelivery, WindowReturn:
		return WindowKind(s), true
	default:
		return "", false
	}
}

const (
	minWindows    = 2
	maxWindows    = 3
	maxWindowLen  = 120
	maxAddressLen = 300
)

// DeliveryPoint is a snapshot of a reference pickup location, copied into
// the coordination so later catalog edits do not move an agreed meeting.
type DeliveryPoint struct {
	ID      uuid.UUID
	Name    string
	Address string
}

// Coordination tracks the owner-proposed, renter-accepted, owner-confirmed
// handover arrangement. Delivery and return are negotiated separately: the
// owner puts windows on the table for both legs, the renter picks one of
// each. The zero value means nothing was proposed yet.
type Coordination struct {
	Mode            DeliveryMode
	Address         string
	DeliveryPoint   *DeliveryPoint
	DeliveryWindows []string
	ReturnWindows   []string
	ChosenDelivery  string
	ChosenReturn    string
	Confirmed       bool
	ProposedAt      *time.Time
	AcceptedAt      *time.Time
	ConfirmedAt     *time.Time
}

func (c *Coordination) Proposed() bool { return c.ProposedAt != nil }

// Chosen reports whether the renter has picked a window for both legs.
func (c *Coordination) Chosen() bool {
	return c.ChosenDelivery != "" && c.ChosenReturn != ""
}

func (r *Rental) coordinationProposable() bool {
	switch r.Status {
	case StatusPendingPayment, StatusPaid, StatusConfirmed:
		return true
	default:
		return false
	}
}

func (r *Rental) coordinationSelectable() bool {
	switch r.Status {
	case StatusPaid, StatusConfirmed:
		return true
	default:
		return false
	}
}

func cleanWindows(windows []string) ([]string, error) {
	cleaned := make([]string, 0, len(windows))
	seen := make(map[string]struct{}, len(windows))
	for _, w := range windows {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if len(w) > maxWindowLen {
			return nil, errs.Category(errs.New("window label exceeds 120 characters"), errs.ErrValidation)
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		cleaned = append(cleaned, w)
	}
	if len(cleaned) < minWindows || len(cleaned) > maxWindows {
		return nil, errs.Category(errs.New("between two and three windows must be proposed"), errs.ErrValidation)
	}
	return cleaned, nil
}

// Propose replaces any previous proposal. Both legs must carry windows, and
// the selections and confirmation are reset so a stale acceptance cannot
// survive new terms.
func (r *Rental) ProposeCoordination(mode DeliveryMode, address string, point *DeliveryPoint, deliveryWindows, returnWindows []string, now time.Time) error {
	if !r.coordinationProposable() {
		return errs.ErrInvalidState
	}

	delivery, err := cleanWindows(deliveryWindows)
	if err != nil {
		return err
	}
	ret, err := cleanWindows(returnWindows)
	if err != nil {
		return err
	}

	address = strings.TrimSpace(address)
	switch mode {
	case ModeMeetup:
		if address == "" {
			return errs.Category(errs.New("meetup coordination requires an address"), errs.ErrValidation)
		}
		if len(address) > maxAddressLen {
			return errs.Category(errs.New("address exceeds 300 characters"), errs.ErrValidation)
		}
		point = nil
	case ModeDeliveryPoint:
		if point == nil {
			return errs.Category(errs.New("delivery point coordination requires a point"), errs.ErrValidation)
		}
		address = point.Address
	default:
		return errs.Category(errs.New("unknown delivery mode"), errs.ErrValidation)
	}

	at := now
	r.Coordination = Coordination{
		Mode:            mode,
		Address:         address,
		DeliveryPoint:   point,
		DeliveryWindows: delivery,
		ReturnWindows:   ret,
		ProposedAt:      &at,
	}
	r.touch(now)
	r.record(EventCoordinationProposed, now, map[string]any{
		"mode":             string(mode),
		"delivery_windows": delivery,
		"return_windows":   ret,
	})
	return nil
}

// AcceptWindow records the renter's choice for one leg; it must be one of
// the windows currently on the table for that leg.
func (r *Rental) AcceptWindow(kind WindowKind, window string, now time.Time) error {
	if !r.coordinationSelectable() {
		return errs.ErrInvalidState
	}
	c := &r.Coordination
	if !c.Proposed() {
		return errs.ErrWindowNotProposed
	}

	var proposed []string
	switch kind {
	case WindowDelivery:
		proposed = c.DeliveryWindows
	case WindowReturn:
		proposed = c.ReturnWindows
	default:
		return errs.Category(errs.New("unknown window kind"), errs.ErrValidation)
	}

	window = strings.TrimSpace(window)
	found := false
	for _, w := range proposed {
		if w == window {
			found = true
			break
		}
	}
	if !found {
		return errs.ErrWindowNotProposed
	}

	at := now
	switch kind {
	case WindowDelivery:
		c.ChosenDelivery = window
	case WindowReturn:
		c.ChosenReturn = window
	}
	c.AcceptedAt = &at
	c.Confirmed = false
	c.ConfirmedAt = nil
	r.touch(now)
	r.record(EventCoordinationAccepted, now, map[string]any{
		"kind":   string(kind),
		"window": window,
	})
	return nil
}

// ConfirmCoordination is the owner's final lock once the renter has chosen
// a window for both the delivery and the return.
func (r *Rental) ConfirmCoordination(now time.Time) error {
	if !r.coordinationSelectable() {
		return errs.ErrInvalidState
	}
	c := &r.Coordination
	if !c.Proposed() || !c.Chosen() {
		return errs.ErrWindowNotProposed
	}
	if c.Confirmed {
		return nil
	}

	at := now
	c.Confirmed = true
	c.ConfirmedAt = &at
	r.touch(now)
	r.record(EventCoordinationConfirmed, now, map[string]any{
		"delivery_window": c.ChosenDelivery,
		"return_window":   c.ChosenReturn,
	})
	return nil
}
