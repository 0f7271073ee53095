package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/pkg/errs"
)

type EventRepository struct {
	db db.DBTX
}

func NewEventRepository(dbtx db.DBTX) *EventRepository {
	return &EventRepository{db: dbtx}
}

func (r *EventRepository) Append(ctx context.Context, rentalID uuid.UUID, events []rental.Event) error {
	for _, ev := range events {
		var payload []byte
		if ev.Payload != nil {
			b, err := json.Marshal(ev.Payload)
			if err != nil {
				return errs.Wrap(err, "failed to marshal event payload")
			}
			payload = b
		}
		_, err := r.db.Exec(ctx, `
			INSERT INTO rental_events (id, rental_id, event_type, payload, occurred_at)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New(), rentalID, string(ev.Type), payload, ev.At,
		)
		if err != nil {
			return infra.ClassifyErr("failed to append rental event", err)
		}
	}
	return nil
}

func (r *EventRepository) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]rental.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT event_type, payload, occurred_at
		FROM rental_events
		WHERE rental_id = $1
		ORDER BY occurred_at, id`,
		rentalID,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list rental events", err)
	}
	defer rows.Close()

	var out []rental.Event
	for rows.Next() {
		var (
			ev      rental.Event
			evType  string
			payload []byte
		)
		if err := rows.Scan(&evType, &payload, &ev.At); err != nil {
			return nil, infra.ClassifyErr("failed to scan event row", err)
		}
		ev.Type = rental.EventType(evType)
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &ev.Payload); err != nil {
				return nil, errs.Wrap(err, "failed to unmarshal event payload")
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate event rows", err)
	}
	return out, nil
}
