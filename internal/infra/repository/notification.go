package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"lendhub/internal/domain/notification"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/pkg/errs"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

// Insert suppresses duplicates by the event key carried in metadata, so a
// retried transition never produces a second inbox entry.
func (r *NotificationRepository) Insert(ctx context.Context, n *notification.Notification) (bool, error) {
	meta, err := json.Marshal(n.Metadata)
	if err != nil {
		return false, errs.Wrap(err, "failed to marshal notification metadata")
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO notifications (id, user_id, kind, title, body, metadata, read, created_at)
		SELECT $1, $2, $3, $4, $5, $6, FALSE, $7
		WHERE NOT EXISTS (
			SELECT 1 FROM notifications
			WHERE user_id = $2 AND metadata->>'event_key' = $8
		)`,
		n.ID, n.UserID, string(n.Kind), n.Title, n.Body, meta, n.CreatedAt, n.EventKey(),
	)
	if err != nil {
		return false, infra.ClassifyErr("failed to insert notification", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, kind, title, body, metadata, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list notifications", err)
	}
	defer rows.Close()

	var out []*notification.Notification
	for rows.Next() {
		var (
			n    notification.Notification
			kind string
			meta []byte
		)
		if err := rows.Scan(&n.ID, &n.UserID, &kind, &n.Title, &n.Body, &meta, &n.Read, &n.CreatedAt); err != nil {
			return nil, infra.ClassifyErr("failed to scan notification row", err)
		}
		n.Kind = notification.Kind(kind)
		if len(meta) > 0 {
			if err := json.Unmarshal(meta, &n.Metadata); err != nil {
				return nil, errs.Wrap(err, "failed to unmarshal notification metadata")
			}
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate notification rows", err)
	}
	return out, nil
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read = FALSE`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, infra.ClassifyErr("failed to count unread notifications", err)
	}
	return n, nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return false, infra.ClassifyErr("failed to mark notification read", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND read = FALSE`,
		userID,
	)
	if err != nil {
		return 0, infra.ClassifyErr("failed to mark notifications read", err)
	}
	return tag.RowsAffected(), nil
}
