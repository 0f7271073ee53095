package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/notification"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/config"
	"lendhub/internal/usecase/shared"
)

type NotificationView struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"created_at"`
}

type NotificationQueries interface {
	List(ctx context.Context, userID uuid.UUID) ([]NotificationView, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationQueriesImpl struct {
	uow shared.UnitOfWork
	cfg config.NotificationConfig
}

func NewNotificationQueries(uow shared.UnitOfWork, cfg config.Config) NotificationQueries {
	return &notificationQueriesImpl{uow: uow, cfg: cfg.Notification}
}

func (q *notificationQueriesImpl) List(ctx context.Context, userID uuid.UUID) ([]NotificationView, error) {
	var items []*notification.Notification
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		items, qerr = tx.Notifications().ListByUser(ctx, userID, q.cfg.ListCap)
		return qerr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindUnavailable) {
			return []NotificationView{}, nil
		}
		return nil, err
	}

	out := make([]NotificationView, 0, len(items))
	for _, n := range items {
		out = append(out, NotificationView{
			ID:        n.ID,
			Kind:      string(n.Kind),
			Title:     n.Title,
			Body:      n.Body,
			Metadata:  n.Metadata,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

func (q *notificationQueriesImpl) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		n, qerr = tx.Notifications().UnreadCount(ctx, userID)
		return qerr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindUnavailable) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
