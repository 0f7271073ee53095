package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/chat"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
)

type MessageRepository struct {
	db db.DBTX
}

func NewMessageRepository(dbtx db.DBTX) *MessageRepository {
	return &MessageRepository{db: dbtx}
}

func (r *MessageRepository) Create(ctx context.Context, m *chat.Message) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO messages (id, rental_id, sender_id, body, sent_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.RentalID, m.SenderID, m.Body, m.SentAt,
	)
	if err != nil {
		return infra.ClassifyErr("failed to create message", err)
	}
	return nil
}

// ListByRental returns the most recent messages in chronological order.
func (r *MessageRepository) ListByRental(ctx context.Context, rentalID uuid.UUID, limit int) ([]*chat.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, rental_id, sender_id, body, sent_at FROM (
			SELECT id, rental_id, sender_id, body, sent_at
			FROM messages
			WHERE rental_id = $1
			ORDER BY sent_at DESC, id DESC
			LIMIT $2
		) recent
		ORDER BY sent_at, id`,
		rentalID, limit,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list messages", err)
	}
	defer rows.Close()

	var out []*chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.RentalID, &m.SenderID, &m.Body, &m.SentAt); err != nil {
			return nil, infra.ClassifyErr("failed to scan message row", err)
		}
		out = append(out, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate message rows", err)
	}
	return out, nil
}

func (r *MessageRepository) LastSentAt(ctx context.Context, rentalID, senderID uuid.UUID) (*time.Time, error) {
	var at *time.Time
	err := r.db.QueryRow(ctx, `
		SELECT MAX(sent_at)
		FROM messages
		WHERE rental_id = $1 AND sender_id = $2`,
		rentalID, senderID,
	).Scan(&at)
	if err != nil {
		return nil, infra.ClassifyErr("failed to read last sent time", err)
	}
	return at, nil
}

func (r *MessageRepository) UnreadCount(ctx context.Context, rentalID, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		WHERE m.rental_id = $1
		  AND m.sender_id <> $2
		  AND m.sent_at > COALESCE(
			(SELECT last_read_at FROM chat_read_markers
			 WHERE rental_id = $1 AND user_id = $2),
			'-infinity'::timestamptz)`,
		rentalID, userID,
	).Scan(&n)
	if err != nil {
		return 0, infra.ClassifyErr("failed to count unread messages", err)
	}
	return n, nil
}

// UnreadTotal sums unread messages for the inbox badge, over the rentals
// the user takes part in that are still in a chat-eligible state.
func (r *MessageRepository) UnreadTotal(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM messages m
		JOIN rentals r ON r.id = m.rental_id
		WHERE (r.renter_id = $1 OR r.owner_id = $1)
		  AND r.status IN ('paid', 'confirmed', 'in_use', 'incident')
		  AND m.sender_id <> $1
		  AND m.sent_at > COALESCE(
			(SELECT last_read_at FROM chat_read_markers
			 WHERE rental_id = m.rental_id AND user_id = $1),
			'-infinity'::timestamptz)`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, infra.ClassifyErr("failed to count unread total", err)
	}
	return n, nil
}

func (r *MessageRepository) UpsertReadMarker(ctx context.Context, rentalID, userID uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO chat_read_markers (rental_id, user_id, last_read_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (rental_id, user_id)
		DO UPDATE SET last_read_at = GREATEST(chat_read_markers.last_read_at, EXCLUDED.last_read_at)`,
		rentalID, userID, at,
	)
	if err != nil {
		return infra.ClassifyErr("failed to upsert read marker", err)
	}
	return nil
}
