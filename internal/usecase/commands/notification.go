package commands

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/shared"
)

type NotificationCommands interface {
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type notificationCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewNotificationCommands(uow shared.UnitOfWork) NotificationCommands {
	return &notificationCommandsImpl{uow: uow}
}

func (uc *notificationCommandsImpl) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		updated, err := tx.Notifications().MarkRead(ctx, notificationID, userID)
		if err != nil {
			return err
		}
		if !updated {
			return errs.ErrNotificationNotFound
		}
		return nil
	})
}

func (uc *notificationCommandsImpl) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := uc.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var uerr error
		n, uerr = tx.Notifications().MarkAllRead(ctx, userID)
		return uerr
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
