package response

import (
	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/usecase/queries"
)

// The query views already carry the wire shape and the visibility rules;
// responses reuse them and only add the envelopes commands need.

type RentalResponse = queries.RentalView

type CancelRentalResponse struct {
	Rental      *queries.RentalView `json:"rental"`
	RefundCents int64               `json:"refund_cents"`
}

type ExpireRentalResponse struct {
	Expired bool `json:"expired"`
}

type InboxResponse struct {
	Items []*queries.RentalView `json:"items"`
	Total int64                 `json:"total"`
}

type TimelineResponse struct {
	Events []queries.TimelineEntry `json:"events"`
}

type OccupancyResponse struct {
	Slots []queries.OccupancySlot `json:"slots"`
}

type DeliveryPointsResponse struct {
	Points []queries.DeliveryPointView `json:"points"`
}

type IncidentResponse = queries.IncidentView

// FromRental projects a command result for the acting viewer, going
// through the same gating the read side applies.
func FromRental(r *rental.Rental, viewerID uuid.UUID, viewerRole string) *RentalResponse {
	return queries.NewRentalView(r, viewerID, viewerRole)
}

func FromIncident(inc *rental.Incident) *IncidentResponse {
	return queries.NewIncidentView(inc)
}
