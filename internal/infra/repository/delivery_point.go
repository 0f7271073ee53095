package repository

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
)

type DeliveryPointRepository struct {
	db db.DBTX
}

func NewDeliveryPointRepository(dbtx db.DBTX) *DeliveryPointRepository {
	return &DeliveryPointRepository{db: dbtx}
}

// List reads the reference delivery points. The table is optional; a
// missing relation surfaces as KindUnavailable.
func (r *DeliveryPointRepository) List(ctx context.Context) ([]rental.DeliveryPoint, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, address FROM delivery_points ORDER BY name`,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list delivery points", err)
	}
	defer rows.Close()

	var out []rental.DeliveryPoint
	for rows.Next() {
		var p rental.DeliveryPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Address); err != nil {
			return nil, infra.ClassifyErr("failed to scan delivery point row", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate delivery point rows", err)
	}
	return out, nil
}

func (r *DeliveryPointRepository) FindByID(ctx context.Context, id uuid.UUID) (*rental.DeliveryPoint, error) {
	var p rental.DeliveryPoint
	err := r.db.QueryRow(ctx,
		`SELECT id, name, address FROM delivery_points WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Address)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find delivery point by id", err)
	}
	return &p, nil
}
