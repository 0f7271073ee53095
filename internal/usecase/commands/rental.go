package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/notify"
	"lendhub/internal/usecase/shared"
)

var (
	errOnlyRenter = errs.Category(errs.New("only the renter may perform this action"), errs.ErrForbidden)
	errOnlyOwner  = errs.Category(errs.New("only the owner may perform this action"), errs.ErrForbidden)
)

type CreateRentalRequest struct {
	ArticleID uuid.UUID
	Start     time.Time
	End       time.Time
}

type CancelResult struct {
	Rental      *rental.Rental
	RefundCents int64
}

type ResolveIncidentRequest struct {
	Decision      string
	RetainedCents *int64
	Note          string
}

type RentalCommands interface {
	Create(ctx context.Context, req CreateRentalRequest, renterID uuid.UUID) (*rental.Rental, error)
	Pay(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
	Cancel(ctx context.Context, rentalID, actorID uuid.UUID, actorRole user.Role, note string) (*CancelResult, error)
	ConfirmDelivery(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
	ConfirmDeliveryOTP(ctx context.Context, rentalID, actorID uuid.UUID, code, checklist string) (*rental.Rental, error)
	MarkInUse(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
	MarkReturned(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
	ConfirmReturnOTP(ctx context.Context, rentalID, actorID uuid.UUID, code, checklist string) (*rental.Rental, error)
	Finalize(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)
	ReportIncident(ctx context.Context, rentalID, actorID uuid.UUID, description string) (*rental.Incident, error)
	ResolveIncident(ctx context.Context, rentalID, actorID uuid.UUID, actorRole user.Role, req ResolveIncidentRequest) (*rental.Incident, error)
	// ExpireIfDue applies the lazy payment expiry; read paths call it
	// when they notice an overdue pending rental.
	ExpireIfDue(ctx context.Context, rentalID uuid.UUID) (bool, error)
}

type rentalCommandsImpl struct {
	uow      shared.UnitOfWork
	notifier *notify.Notifier
	clock    clock.Clock
	cfg      config.RentalConfig
}

func NewRentalCommands(uow shared.UnitOfWork, notifier *notify.Notifier, clk clock.Clock, cfg config.Config) RentalCommands {
	return &rentalCommandsImpl{uow: uow, notifier: notifier, clock: clk, cfg: cfg.Rental}
}

func (uc *rentalCommandsImpl) Create(ctx context.Context, req CreateRentalRequest, renterID uuid.UUID) (*rental.Rental, error) {
	iv, err := rental.NewInterval(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	if !iv.Start().After(now) {
		return nil, errs.Category(errs.New("rental must start in the future"), errs.ErrValidation)
	}

	var (
		created *rental.Rental
		expired []*rental.Rental
	)
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created = nil
		expired = nil

		actor, derr := tx.Users().FindByID(ctx, renterID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrUserNotFound)
		}
		if actor.Role.IsAdmin() {
			return errs.NewCoded(errs.ErrForbidden, "ADMIN_FORBIDDEN",
				"administrators cannot take part in rentals", nil)
		}
		if missing := actor.MissingProfileFields(); len(missing) > 0 {
			return errs.NewCoded(errs.ErrForbidden, "PROFILE_INCOMPLETE",
				"complete your profile before renting", map[string]any{"missing": missing})
		}

		art, derr := tx.Articles().FindByID(ctx, req.ArticleID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrArticleNotFound)
		}

		r, derr := rental.New(art, renterID, iv, now)
		if derr != nil {
			return derr
		}

		blackouts, derr := tx.Articles().Blackouts(ctx, art.ID)
		if derr != nil && !infra.IsKind(derr, infra.KindUnavailable) {
			return derr
		}
		for _, b := range blackouts {
			if iv.Overlaps(b) {
				return errs.ErrArticleBlackout
			}
		}

		// The locking read serializes concurrent bookings of the same
		// article; overdue pending conflicts are expired on the spot
		// rather than blocking the new booking.
		conflicts, derr := tx.Rentals().LockConflicting(ctx, art.ID, iv)
		if derr != nil {
			return derr
		}
		for _, c := range conflicts {
			if c.Expirable(now, uc.cfg.PaymentExpiry) && c.Expire(now) {
				if derr = tx.Rentals().Update(ctx, c); derr != nil {
					return derr
				}
				if derr = tx.Events().Append(ctx, c.ID, c.TakeEvents()); derr != nil {
					return derr
				}
				expired = append(expired, c)
				continue
			}
			return errs.ErrBookingOverlap
		}

		if derr = tx.Rentals().Create(ctx, r); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return errs.ErrBookingOverlap
			}
			return derr
		}
		if derr = tx.Events().Append(ctx, r.ID, r.TakeEvents()); derr != nil {
			return derr
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, c := range expired {
		uc.notifier.RentalEvents(ctx, c, []rental.Event{{Type: rental.EventPaymentExpired, At: now}})
	}
	uc.notifier.RentalEvents(ctx, created, []rental.Event{{Type: rental.EventCreated, At: now}})
	return created, nil
}

func (uc *rentalCommandsImpl) Pay(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsRenter(actorID) {
			return uc.forbid(r, actorID, errOnlyRenter)
		}
		if r.PublicState() == rental.PublicExpired {
			return errs.ErrPaymentExpired
		}
		_, perr := r.Pay(now)
		return perr
	})
}

func (uc *rentalCommandsImpl) Cancel(ctx context.Context, rentalID, actorID uuid.UUID, actorRole user.Role, note string) (*CancelResult, error) {
	var refund rental.Money
	r, err := uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		party, perr := uc.cancelParty(r, actorID, actorRole)
		if perr != nil {
			return perr
		}
		m, _, cerr := r.Cancel(party, note, now)
		if cerr != nil {
			return cerr
		}
		refund = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CancelResult{Rental: r, RefundCents: refund.Cents()}, nil
}

func (uc *rentalCommandsImpl) cancelParty(r *rental.Rental, actorID uuid.UUID, actorRole user.Role) (rental.Party, error) {
	if actorRole.IsAdmin() {
		return rental.PartyAdmin, nil
	}
	switch {
	case r.IsRenter(actorID):
		return rental.PartyRenter, nil
	case r.IsOwner(actorID):
		return rental.PartyOwner, nil
	default:
		return "", errs.ErrNotParticipant
	}
}

func (uc *rentalCommandsImpl) ConfirmDelivery(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsOwner(actorID) {
			return uc.forbid(r, actorID, errOnlyOwner)
		}
		_, err := r.ConfirmDelivery(now)
		return err
	})
}

func (uc *rentalCommandsImpl) ConfirmDeliveryOTP(ctx context.Context, rentalID, actorID uuid.UUID, code, checklist string) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsOwner(actorID) {
			return uc.forbid(r, actorID, errOnlyOwner)
		}
		return r.ConfirmDeliveryOTP(code, checklist, now)
	})
}

func (uc *rentalCommandsImpl) MarkInUse(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsRenter(actorID) {
			return uc.forbid(r, actorID, errOnlyRenter)
		}
		_, err := r.MarkInUse(now)
		return err
	})
}

func (uc *rentalCommandsImpl) MarkReturned(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsRenter(actorID) {
			return uc.forbid(r, actorID, errOnlyRenter)
		}
		_, err := r.MarkReturned(now)
		return err
	})
}

func (uc *rentalCommandsImpl) ConfirmReturnOTP(ctx context.Context, rentalID, actorID uuid.UUID, code, checklist string) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsOwner(actorID) {
			return uc.forbid(r, actorID, errOnlyOwner)
		}
		return r.ConfirmReturnOTP(code, checklist, now)
	})
}

func (uc *rentalCommandsImpl) Finalize(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error) {
	return uc.transition(ctx, rentalID, func(r *rental.Rental, now time.Time) error {
		if !r.IsOwner(actorID) {
			return uc.forbid(r, actorID, errOnlyOwner)
		}
		_, err := r.Finalize(now)
		return err
	})
}

func (uc *rentalCommandsImpl) ReportIncident(ctx context.Context, rentalID, actorID uuid.UUID, description string) (*rental.Incident, error) {
	var (
		reported *rental.Incident
		rent     *rental.Rental
		events   []rental.Event
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if !r.IsParticipant(actorID) {
			return errs.ErrNotParticipant
		}

		// One incident per rental; a repeated report returns the
		// existing one untouched. A missing incident table only costs
		// the report row, the rental transition still commits.
		existing, derr := tx.Incidents().FindByRentalID(ctx, rentalID)
		if derr == nil {
			reported = existing
			rent = r
			events = nil
			return nil
		}
		if !infra.IsKind(derr, infra.KindNotFound) && !infra.IsKind(derr, infra.KindUnavailable) {
			return derr
		}

		now := uc.clock.Now()
		inc, derr := rental.NewIncident(rentalID, actorID, description, now)
		if derr != nil {
			return derr
		}
		if derr = r.ReportIncident(now); derr != nil {
			return derr
		}
		if derr = tx.Incidents().Create(ctx, inc); derr != nil {
			if !infra.IsKind(derr, infra.KindUnavailable) {
				return derr
			}
			slog.Warn("incident store unavailable, skipping the report row",
				"rental_id", rentalID.String())
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		events = r.TakeEvents()
		if derr = tx.Events().Append(ctx, r.ID, events); derr != nil {
			return derr
		}
		reported = inc
		rent = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.RentalEvents(ctx, rent, events)
	return reported, nil
}

func (uc *rentalCommandsImpl) ResolveIncident(ctx context.Context, rentalID, actorID uuid.UUID, actorRole user.Role, req ResolveIncidentRequest) (*rental.Incident, error) {
	decision, ok := rental.NewIncidentDecision(req.Decision)
	if !ok {
		return nil, errs.Category(errs.New("unknown incident decision"), errs.ErrValidation)
	}

	var (
		resolved *rental.Incident
		rent     *rental.Rental
		events   []rental.Event
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		if !actorRole.IsAdmin() && !r.IsOwner(actorID) {
			return errOnlyOwner
		}

		now := uc.clock.Now()

		// Like the report path, a missing incident table must not block
		// the deposit decision; the rental is resolved against a
		// stand-in report that is never stored.
		inc, derr := tx.Incidents().FindByRentalID(ctx, rentalID)
		incidentsDown := infra.IsKind(derr, infra.KindUnavailable)
		if derr != nil {
			if !incidentsDown {
				return mapNotFound(derr, errs.ErrIncidentNotFound)
			}
			slog.Warn("incident store unavailable, resolving the rental without the report row",
				"rental_id", rentalID.String())
			if inc, derr = rental.NewIncident(rentalID, actorID, "", now); derr != nil {
				return derr
			}
		}

		var retainedReq *rental.Money
		if req.RetainedCents != nil {
			m := rental.NewMoney(*req.RetainedCents)
			retainedReq = &m
		}
		retained, derr := rental.RetentionFor(decision, retainedReq, r.Deposit)
		if derr != nil {
			return derr
		}

		changed, derr := inc.Resolve(decision, retained, req.Note, now)
		if derr != nil {
			return derr
		}
		if !changed {
			resolved = inc
			rent = r
			events = nil
			return nil
		}

		if derr = r.ResolveIncident(decision, retained, now); derr != nil {
			return derr
		}
		if !incidentsDown {
			if derr = tx.Incidents().Update(ctx, inc); derr != nil {
				return derr
			}
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		events = r.TakeEvents()
		if derr = tx.Events().Append(ctx, r.ID, events); derr != nil {
			return derr
		}
		resolved = inc
		rent = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.RentalEvents(ctx, rent, events)
	return resolved, nil
}

func (uc *rentalCommandsImpl) ExpireIfDue(ctx context.Context, rentalID uuid.UUID) (bool, error) {
	var (
		expired bool
		rent    *rental.Rental
		events  []rental.Event
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}
		expired = false
		if !r.Expirable(uc.clock.Now(), uc.cfg.PaymentExpiry) {
			return nil
		}
		if !r.Expire(uc.clock.Now()) {
			return nil
		}
		if derr = tx.Rentals().Update(ctx, r); derr != nil {
			return derr
		}
		events = r.TakeEvents()
		if derr = tx.Events().Append(ctx, r.ID, events); derr != nil {
			return derr
		}
		expired = true
		rent = r
		return nil
	})
	if err != nil {
		return false, err
	}
	if expired {
		uc.notifier.RentalEvents(ctx, rent, events)
	}
	return expired, nil
}

// transition is the shared write path: lock the rental, apply the lazy
// expiry, run fn, persist, append events, notify after commit. When the
// expiry fires, the overdue rental is expired and committed instead of
// running fn; the caller sees the expiry, not its own operation.
func (uc *rentalCommandsImpl) transition(ctx context.Context, rentalID uuid.UUID, fn func(r *rental.Rental, now time.Time) error) (*rental.Rental, error) {
	var (
		rent       *rental.Rental
		events     []rental.Event
		expiredNow bool
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expiredNow = false
		r, derr := tx.Rentals().FindByIDForUpdate(ctx, rentalID)
		if derr != nil {
			return mapNotFound(derr, errs.ErrRentalNotFound)
		}

		now := uc.clock.Now()
		if r.Expirable(now, uc.cfg.PaymentExpiry) && r.Expire(now) {
			expiredNow = true
		} else if derr = fn(r, now); derr != nil {
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
	if expiredNow {
		return nil, errs.ErrPaymentExpired
	}
	return rent, nil
}

// forbid hides the rental's existence from strangers while giving the
// wrong-side participant a meaningful error.
func (uc *rentalCommandsImpl) forbid(r *rental.Rental, actorID uuid.UUID, sideErr error) error {
	if !r.IsParticipant(actorID) {
		return errs.ErrNotParticipant
	}
	return sideErr
}

func mapNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}
