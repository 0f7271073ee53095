package rental

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/pkg/errs"
)

const (
	maxIncidentDescLen  = 1000
	defaultIncidentDesc = "Incident reported"
)

// Incident is the single damage or dispute report a rental may carry.
type Incident struct {
	ID          uuid.UUID
	RentalID    uuid.UUID
	ReporterID  uuid.UUID
	Description string
	ReportedAt  time.Time

	Resolved       bool
	Decision       IncidentDecision
	RetainedCents  int64
	ResolutionNote string
	ResolvedAt     *time.Time
}

// NewIncident builds a report; an empty description falls back to a
// generic one.
func NewIncident(rentalID, reporterID uuid.UUID, description string, now time.Time) (*Incident, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		description = defaultIncidentDesc
	}
	if len(description) > maxIncidentDescLen {
		return nil, errs.Category(errs.New("incident description exceeds 1000 characters"), errs.ErrValidation)
	}
	return &Incident{
		ID:          uuid.New(),
		RentalID:    rentalID,
		ReporterID:  reporterID,
		Description: description,
		ReportedAt:  now,
	}, nil
}

// Resolve closes the incident. Retaining money requires a note; resolving
// twice is a no-op so a retried request cannot flip an earlier decision.
func (i *Incident) Resolve(decision IncidentDecision, retained Money, note string, now time.Time) (bool, error) {
	if i.Resolved {
		return false, nil
	}
	note = strings.TrimSpace(note)
	if decision != DecisionRelease && note == "" {
		return false, errs.ErrNoteRequired
	}

	at := now
	i.Resolved = true
	i.Decision = decision
	i.RetainedCents = retained.Cents()
	i.ResolutionNote = note
	i.ResolvedAt = &at
	return true, nil
}
