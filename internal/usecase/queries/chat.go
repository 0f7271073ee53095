package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/chat"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/shared"
)

type MessageView struct {
	ID       uuid.UUID `json:"id"`
	RentalID uuid.UUID `json:"rental_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
	Mine     bool      `json:"mine"`
}

type ChatQueries interface {
	Messages(ctx context.Context, rentalID, viewerID uuid.UUID) ([]MessageView, error)
	UnreadCount(ctx context.Context, rentalID, viewerID uuid.UUID) (int64, error)
	UnreadTotal(ctx context.Context, viewerID uuid.UUID) (int64, error)
}

type chatQueriesImpl struct {
	uow shared.UnitOfWork
	cfg config.ChatConfig
}

func NewChatQueries(uow shared.UnitOfWork, cfg config.Config) ChatQueries {
	return &chatQueriesImpl{uow: uow, cfg: cfg.Chat}
}

func (q *chatQueriesImpl) Messages(ctx context.Context, rentalID, viewerID uuid.UUID) ([]MessageView, error) {
	var msgs []*chat.Message
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, qerr := tx.Rentals().FindByID(ctx, rentalID)
		if qerr != nil {
			if infra.IsKind(qerr, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return qerr
		}
		if !r.IsParticipant(viewerID) {
			return errs.ErrNotParticipant
		}
		msgs, qerr = tx.Messages().ListByRental(ctx, rentalID, q.cfg.HistoryLimit)
		return qerr
	})
	if err != nil {
		return nil, err
	}

	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{
			ID:       m.ID,
			RentalID: m.RentalID,
			SenderID: m.SenderID,
			Body:     m.Body,
			SentAt:   m.SentAt,
			Mine:     m.SenderID == viewerID,
		})
	}
	return out, nil
}

func (q *chatQueriesImpl) UnreadCount(ctx context.Context, rentalID, viewerID uuid.UUID) (int64, error) {
	var n int64
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, qerr := tx.Rentals().FindByID(ctx, rentalID)
		if qerr != nil {
			if infra.IsKind(qerr, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return qerr
		}
		if !r.IsParticipant(viewerID) {
			return errs.ErrNotParticipant
		}
		n, qerr = tx.Messages().UnreadCount(ctx, rentalID, viewerID)
		return qerr
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (q *chatQueriesImpl) UnreadTotal(ctx context.Context, viewerID uuid.UUID) (int64, error) {
	var n int64
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		n, qerr = tx.Messages().UnreadTotal(ctx, viewerID)
		return qerr
	})
	if err != nil {
		// No chat tables yet means nothing unread.
		if infra.IsKind(err, infra.KindUnavailable) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
