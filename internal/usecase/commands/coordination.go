package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/notify"
	"lendhub/internal/usecase/shared"
)

type ProposeCoordinationRequest struct {
	Mode            string
	Address         string
	DeliveryPointID *uuid.UUID
	DeliveryWindows []string
	ReturnWindows   []string
}

type CoordinationCommands interface {
	Propose(ctx context.Context, rentalID, actorID uuid.UUID, req ProposeCoordinationRequest) (*rental.Rental, error)
	AcceptWindow(ctx context.Context, rentalID, actorID uuid.UUID, kind, window string) (*rental.Rental, error)
	Confirm(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
}

type coordinationCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier *notify.Notifier
	clock    clock.Clock
}

func NewCoordinationCommands(uow shared.UnitOfWork, notifier *notify.Notifier, clk clock.Clock) CoordinationCommands {
	return &coordinationCommandsImpl{uow: uow, notifier: notifier, clock: clk}
}

// Propose is owner-only: the owner puts 2-3 windows on the table for each
// of the delivery and the return, with a meetup address or a reference
// delivery point.
func (uc *coordinationCommandsImpl) Propose(ctx context.Context, rentalID, actorID uuid.UUID, req ProposeCoordinationRequest) (*rental.Rental, error) {
	mode, ok := rental.NewDeliveryMode(req.Mode)
	if !ok {
		return nil, errs.Category(errs.New("unknown delivery mode"), errs.ErrValidation)
	}

	var (
		rent   *rental.Rental
		events []rental.Event
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if !r.IsOwner(actorID) {
			if !r.IsParticipant(actorID) {
				return errs.ErrNotParticipant
			}
			return errOnlyOwner
		}

		var point *rental.DeliveryPoint
		if mode == rental.ModeDeliveryPoint {
			if req.DeliveryPointID == nil {
				return errs.Category(errs.New("delivery point id is required"), errs.ErrValidation)
			}
			point, derr = tx.DeliveryPoints().FindByID(ctx, *req.DeliveryPointID)
			if derr != nil {
				return mapNotFound(derr, errs.ErrDeliveryPointNotFound)
			}
		}

		now := uc.clock.Now()
		if derr = r.ProposeCoordination(mode, req.Address, point, req.DeliveryWindows, req.ReturnWindows, now); derr != nil {
			return derr
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		events = r.TakeEvents()
		if derr = tx.Events().Append(ctx, r.ID, events); derr != nil {
			return derr
		}
		rent = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.RentalEvents(ctx, rent, events)
	return rent, nil
}

// AcceptWindow is renter-only; kind selects the delivery or the return leg.
func (uc *coordinationCommandsImpl) AcceptWindow(ctx context.Context, rentalID, actorID uuid.UUID, kind, window string) (*rental.Rental, error) {
	wk, ok := rental.NewWindowKind(kind)
	if !ok {
		return nil, errs.Category(errs.New("unknown window kind"), errs.ErrValidation)
	}
	return uc.coordinate(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsRenter(actorID) {
			if !r.IsParticipant(actorID) {
				return errs.ErrNotParticipant
			}
			return errOnlyRenter
		}
		return r.AcceptWindow(wk, window, now)
	})
}

// Confirm is owner-only and requires the renter's chosen windows for both
// legs.
func (uc *coordinationCommandsImpl) Confirm(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.coordinate(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsOwner(actorID) {
			if !r.IsParticipant(actorID) {
				return errs.ErrNotParticipant
			}
			return errOnlyOwner
		}
		return r.ConfirmCoordination(now)
	})
}

func (uc *coordinationCommandsImpl) coordinate(ctx context.Context, rentalID uuid.UUID, fn func(r *rental.Rental, now time.Time) error) (*rental.Rental, error) {
	var (
		rent   *rental.Rental
		events []rental.Event
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if derr = fn(r, uc.clock.Now()); derr != nil {
			return derr
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		events = r.TakeEvents()
		if derr = tx.Events().Append(ctx, r.ID, events); derr != nil {
			return derr
		}
		rent = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.RentalEvents(ctx, rent, events)
	return rent, nil
}
