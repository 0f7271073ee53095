package queries

import (
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// RentalView is the client-facing projection of a rental. Fields the
// viewer must not see (OTP codes, the agreed address before payment) are
// zeroed during projection, not in the handler.
type RentalView struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"article_id"`
	RenterID  uuid.UUID `json:"renter_id"`
	OwnerID   uuid.UUID `json:"owner_id"`

	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	State     string `json:"state"`
	Delivered bool   `json:"delivered"`
	Returned  bool   `json:"returned"`

	PriceUnit     string `json:"price_unit"`
	UnitPrice     string `json:"unit_price"`
	Units         int    `json:"units"`
	Subtotal      string `json:"subtotal"`
	Deposit       string `json:"deposit"`
	SubtotalCents int64  `json:"subtotal_cents"`
	DepositCents  int64  `json:"deposit_cents"`

	DepositReleased bool `json:"deposit_released"`

	// Renter-only while the rental is open and paid.
	HandoverCode string `json:"handover_code,omitempty"`
	ReturnCode   string `json:"return_code,omitempty"`

	DeliveryChecklist string `json:"delivery_checklist,omitempty"`
	ReturnChecklist   string `json:"return_checklist,omitempty"`

	Coordination *CoordinationView `json:"coordination,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CoordinationView struct {
	Mode              string     `json:"mode"`
	Address           string     `json:"address,omitempty"`
	DeliveryPointName string     `json:"delivery_point_name,omitempty"`
	DeliveryWindows   []string   `json:"delivery_windows"`
	ReturnWindows     []string   `json:"return_windows"`
	ChosenDelivery    string     `json:"chosen_delivery,omitempty"`
	ChosenReturn      string     `json:"chosen_return,omitempty"`
	Confirmed         bool       `json:"confirmed"`
	ProposedAt        time.Time  `json:"proposed_at"`
	AcceptedAt        *time.Time `json:"accepted_at,omitempty"`
	ConfirmedAt       *time.Time `json:"confirmed_at,omitempty"`
}

type InboxPage struct {
	Items []*RentalView `json:"items"`
	Total int64         `json:"total"`
}

type TimelineEntry struct {
	Type    string         `json:"type"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

type OccupancySlot struct {
	RentalID uuid.UUID `json:"rental_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	State    string    `json:"state"`
}

type IncidentView struct {
	ID             uuid.UUID  `json:"id"`
	RentalID       uuid.UUID  `json:"rental_id"`
	ReporterID     uuid.UUID  `json:"reporter_id"`
	Description    string     `json:"description"`
	ReportedAt     time.Time  `json:"reported_at"`
	Resolved       bool       `json:"resolved"`
	Decision       string     `json:"decision,omitempty"`
	RetainedCents  int64      `json:"retained_cents"`
	ResolutionNote string     `json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

type DeliveryPointView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// NewRentalView projects a rental for one viewer, applying the field
// visibility rules.
func NewRentalView(r *rental.Rental, viewerID uuid.UUID, viewerRole string) *RentalView {
	v := &RentalView{
		ID:              r.ID,
		ArticleID:       r.ArticleID,
		RenterID:        r.RenterID,
		OwnerID:         r.OwnerID,
		StartsAt:        r.Interval.Start(),
		EndsAt:          r.Interval.End(),
		State:           string(r.PublicState()),
		Delivered:       r.Delivered,
		Returned:        r.Returned,
		PriceUnit:       string(r.PriceUnit),
		UnitPrice:       r.UnitPrice.String(),
		Units:           r.Units,
		Subtotal:        r.Subtotal.String(),
		Deposit:         r.Deposit.String(),
		SubtotalCents:   r.Subtotal.Cents(),
		DepositCents:    r.Deposit.Cents(),
		DepositReleased: r.DepositReleased,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.CodesVisibleTo(viewerID) {
		v.HandoverCode = r.HandoverCode
		v.ReturnCode = r.ReturnCode
	}
	if r.IsParticipant(viewerID) || viewerRole == RoleAdmin {
		v.DeliveryChecklist = r.DeliveryChecklist
		v.ReturnChecklist = r.ReturnChecklist
	}
	if c := r.Coordination; c.Proposed() {
		cv := &CoordinationView{
			Mode:            string(c.Mode),
			DeliveryWindows: c.DeliveryWindows,
			ReturnWindows:   c.ReturnWindows,
			ChosenDelivery:  c.ChosenDelivery,
			ChosenReturn:    c.ChosenReturn,
			Confirmed:       c.Confirmed,
			ProposedAt:      *c.ProposedAt,
			AcceptedAt:      c.AcceptedAt,
			ConfirmedAt:     c.ConfirmedAt,
		}
		// The exact address stays hidden until the payment went through.
		if r.PaymentOccurred() {
			cv.Address = c.Address
			if c.DeliveryPoint != nil {
				cv.DeliveryPointName = c.DeliveryPoint.Name
			}
		}
		v.Coordination = cv
	}
	return v
}

func NewIncidentView(inc *rental.Incident) *IncidentView {
	return &IncidentView{
		ID:             inc.ID,
		RentalID:       inc.RentalID,
		ReporterID:     inc.ReporterID,
		Description:    inc.Description,
		ReportedAt:     inc.ReportedAt,
		Resolved:       inc.Resolved,
		Decision:       string(inc.Decision),
		RetainedCents:  inc.RetainedCents,
		ResolutionNote: inc.ResolutionNote,
		ResolvedAt:     inc.ResolvedAt,
	}
}
