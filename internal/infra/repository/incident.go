package repository

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
)

type IncidentRepository struct {
	db db.DBTX
}

func NewIncidentRepository(dbtx db.DBTX) *IncidentRepository {
	return &IncidentRepository{db: dbtx}
}

func (r *IncidentRepository) Create(ctx context.Context, inc *rental.Incident) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO incidents (
			id, rental_id, reporter_id, description, reported_at,
			resolved, decision, retained_cents, resolution_note, resolved_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inc.ID, inc.RentalID, inc.ReporterID, inc.Description, inc.ReportedAt,
		inc.Resolved, string(inc.Decision), inc.RetainedCents, inc.ResolutionNote, inc.ResolvedAt,
	)
	if err != nil {
		return infra.ClassifyErr("failed to create incident", err)
	}
	return nil
}

func (r *IncidentRepository) Update(ctx context.Context, inc *rental.Incident) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE incidents SET
			resolved = $2, decision = $3, retained_cents = $4,
			resolution_note = $5, resolved_at = $6
		WHERE id = $1`,
		inc.ID, inc.Resolved, string(inc.Decision), inc.RetainedCents,
		inc.ResolutionNote, inc.ResolvedAt,
	)
	if err != nil {
		return infra.ClassifyErr("failed to update incident", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "incident not found on update", nil)
	}
	return nil
}

func (r *IncidentRepository) FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*rental.Incident, error) {
	var (
		inc      rental.Incident
		decision string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, rental_id, reporter_id, description, reported_at,
		       resolved, decision, retained_cents, resolution_note, resolved_at
		FROM incidents
		WHERE rental_id = $1`,
		rentalID,
	).Scan(
		&inc.ID, &inc.RentalID, &inc.ReporterID, &inc.Description, &inc.ReportedAt,
		&inc.Resolved, &decision, &inc.RetainedCents, &inc.ResolutionNote, &inc.ResolvedAt,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find incident by rental id", err)
	}
	inc.Decision = rental.IncidentDecision(decision)
	return &inc, nil
}
