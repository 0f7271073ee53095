package commands

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/domain/chat"
	"lendhub/internal/domain/rental"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/notify"
	"lendhub/internal/usecase/shared"
)

type ChatCommands interface {
	SendMessage(ctx context.Context, rentalID, senderID uuid.UUID, body string) (*chat.Message, error)
	MarkRead(ctx context.Context, rentalID, userID uuid.UUID) error
}

type chatCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier *notify.Notifier
	clock    clock.Clock
	cfg      config.ChatConfig
}

func NewChatCommands(uow shared.UnitOfWork, notifier *notify.Notifier, clk clock.Clock, cfg config.Config) ChatCommands {
	return &chatCommandsImpl{uow: uow, notifier: notifier, clock: clk, cfg: cfg.Chat}
}

func (uc *chatCommandsImpl) SendMessage(ctx context.Context, rentalID, senderID uuid.UUID, body string) (*chat.Message, error) {
	var (
		sent *chat.Message
		rent *rental.Rental
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByID(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if !r.IsParticipant(senderID) {
			return errs.ErrNotParticipant
		}
		if !r.ChatEnabled(senderID) {
			return errs.ErrChatDisabled
		}

		now := uc.clock.Now()
		last, derr := tx.Messages().LastSentAt(ctx, rentalID, senderID)
		if derr != nil {
			return derr
		}
		if last != nil && now.Sub(*last) < uc.cfg.Cooldown {
			return errs.ErrChatCooldown
		}

		m, derr := chat.NewMessage(rentalID, senderID, body, now)
		if derr != nil {
			return derr
		}
		if derr = tx.Messages().Create(ctx, m); derr != nil {
			return derr
		}
		sent = m
		rent = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.ChatMessage(ctx, rent, senderID, sent.ID)
	return sent, nil
}

func (uc *chatCommandsImpl) MarkRead(ctx context.Context, rentalID, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByID(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if !r.IsParticipant(userID) {
			return errs.ErrNotParticipant
		}
		return tx.Messages().UpsertReadMarker(ctx, rentalID, userID, uc.clock.Now())
	})
}
