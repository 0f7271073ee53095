package queries

import (
	"context"

	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/shared"
)

const (
	defaultInboxLimit = 20
	maxInboxLimit     = 100
)

// Expirer is the slice of the command side the read paths need: applying
// the lazy payment expiry when a stale pending rental is noticed.
type Expirer interface {
	ExpireIfDue(ctx context.Context, rentalID uuid.UUID) (bool, error)
}

type InboxRequest struct {
	Role   string
	Bucket string
	Limit  int
	Offset int
}

type RentalQueries interface {
	Get(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) (*RentalView, error)
	Inbox(ctx context.Context, userID uuid.UUID, req InboxRequest) (*InboxPage, error)
	Timeline(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) ([]TimelineEntry, error)
	Occupancy(ctx context.Context, articleID uuid.UUID) ([]OccupancySlot, error)
	Incident(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) (*IncidentView, error)
	DeliveryPoints(ctx context.Context) ([]DeliveryPointView, error)
}

type rentalQueriesImpl struct {
	uow     shared.UnitOfWork
	expirer Expirer
	clock   clock.Clock
	cfg     config.RentalConfig
}

func NewRentalQueries(uow shared.UnitOfWork, expirer Expirer, clk clock.Clock, cfg config.Config) RentalQueries {
	return &rentalQueriesImpl{uow: uow, expirer: expirer, clock: clk, cfg: cfg.Rental}
}

func (q *rentalQueriesImpl) Get(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) (*RentalView, error) {
	r, err := q.loadFresh(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !r.IsParticipant(viewerID) && viewerRole != RoleAdmin {
		return nil, errs.ErrNotParticipant
	}
	return NewRentalView(r, viewerID, viewerRole), nil
}

func (q *rentalQueriesImpl) Inbox(ctx context.Context, userID uuid.UUID, req InboxRequest) (*InboxPage, error) {
	f := shared.InboxFilter{
		UserID: userID,
		Role:   shared.InboxAsRenter,
		Bucket: shared.BucketAll,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
	if req.Role == string(shared.InboxAsOwner) {
		f.Role = shared.InboxAsOwner
	}
	switch shared.InboxBucket(req.Bucket) {
	case shared.BucketOpen, shared.BucketClosed:
		f.Bucket = shared.InboxBucket(req.Bucket)
	}
	if f.Limit <= 0 {
		f.Limit = defaultInboxLimit
	}
	if f.Limit > maxInboxLimit {
		f.Limit = maxInboxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var (
		rentals []*rental.Rental
		total   int64
	)
	err := q.uow.WithinReadOnly(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		rentals, qerr = tx.Rentals().ListInbox(ctx, f)
		if qerr != nil {
			return qerr
		}
		total, qerr = tx.Rentals().CountInbox(ctx, f)
		return qerr
	})
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	items := make([]*RentalView, 0, len(rentals))
	for _, r := range rentals {
		// Stale pending rentals expire as they are listed; the local
		// copy mirrors what the write just committed.
		if r.Expirable(now, q.cfg.PaymentExpiry) {
			if _, eerr := q.expirer.ExpireIfDue(ctx, r.ID); eerr == nil {
				r.Expire(now)
			}
		}
		items = append(items, NewRentalView(r, userID, RoleUser))
	}
	return &InboxPage{Items: items, Total: total}, nil
}

func (q *rentalQueriesImpl) Timeline(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) ([]TimelineEntry, error) {
	r, err := q.loadFresh(ctx, rentalID)
	if err != nil {
		return nil, err
	}
	if !r.IsParticipant(viewerID) && viewerRole != RoleAdmin {
		return nil, errs.ErrNotParticipant
	}

	var events []rental.Event
	err = q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		events, qerr = tx.Events().ListByRental(ctx, rentalID)
		return qerr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindUnavailable) {
			return []TimelineEntry{}, nil
		}
		return nil, err
	}

	out := make([]TimelineEntry, 0, len(events))
	for _, ev := range events {
		out = append(out, TimelineEntry{Type: string(ev.Type), At: ev.At, Payload: ev.Payload})
	}
	return out, nil
}

// Occupancy lists the booked slots of an article so clients can grey out
// the calendar. It is public: no viewer gating, no party identities in
// the payload beyond the rental id.
func (q *rentalQueriesImpl) Occupancy(ctx context.Context, articleID uuid.UUID) ([]OccupancySlot, error) {
	var rentals []*rental.Rental
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, aerr := tx.Articles().FindByID(ctx, articleID); aerr != nil {
			if infra.IsKind(aerr, infra.KindNotFound) {
				return errs.ErrArticleNotFound
			}
			return aerr
		}
		var qerr error
		rentals, qerr = tx.Rentals().ListActiveByArticle(ctx, articleID)
		return qerr
	})
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	out := make([]OccupancySlot, 0, len(rentals))
	for _, r := range rentals {
		if r.Expirable(now, q.cfg.PaymentExpiry) {
			if _, eerr := q.expirer.ExpireIfDue(ctx, r.ID); eerr == nil {
				continue
			}
		}
		out = append(out, OccupancySlot{
			RentalID: r.ID,
			StartsAt: r.Interval.Start(),
			EndsAt:   r.Interval.End(),
			State:    string(r.PublicState()),
		})
	}
	return out, nil
}

func (q *rentalQueriesImpl) Incident(ctx context.Context, rentalID, viewerID uuid.UUID, viewerRole string) (*IncidentView, error) {
	var view *IncidentView
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, qerr := tx.Rentals().FindByID(ctx, rentalID)
		if qerr != nil {
			if infra.IsKind(qerr, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return qerr
		}
		if !r.IsParticipant(viewerID) && viewerRole != RoleAdmin {
			return errs.ErrNotParticipant
		}
		inc, qerr := tx.Incidents().FindByRentalID(ctx, rentalID)
		if qerr != nil {
			if infra.IsKind(qerr, infra.KindNotFound) {
				return errs.ErrIncidentNotFound
			}
			return qerr
		}
		view = NewIncidentView(inc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// DeliveryPoints returns the reference list; an absent table degrades to
// an empty list instead of an error.
func (q *rentalQueriesImpl) DeliveryPoints(ctx context.Context) ([]DeliveryPointView, error) {
	var points []rental.DeliveryPoint
	err := q.uow.WithDB(ctx, func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		points, qerr = tx.DeliveryPoints().List(ctx)
		return qerr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindUnavailable) {
			return []DeliveryPointView{}, nil
		}
		return nil, err
	}

	out := make([]DeliveryPointView, 0, len(points))
	for _, p := range points {
		out = append(out, DeliveryPointView{ID: p.ID, Name: p.Name, Address: p.Address})
	}
	return out, nil
}

// loadFresh reads the rental and applies the lazy expiry before the
// caller projects it.
func (q *rentalQueriesImpl) loadFresh(ctx context.Context, rentalID uuid.UUID) (*rental.Rental, error) {
	var r *rental.Rental
	load := func(ctx context.Context, tx shared.Tx) error {
		var qerr error
		r, qerr = tx.Rentals().FindByID(ctx, rentalID)
		if qerr != nil {
			if infra.IsKind(qerr, infra.KindNotFound) {
				return errs.ErrRentalNotFound
			}
			return qerr
		}
		return nil
	}

	if err := q.uow.WithDB(ctx, load); err != nil {
		return nil, err
	}
	if r.Expirable(q.clock.Now(), q.cfg.PaymentExpiry) {
		if _, err := q.expirer.ExpireIfDue(ctx, r.ID); err != nil {
			return nil, err
		}
		if err := q.uow.WithDB(ctx, load); err != nil {
			return nil, err
		}
	}
	return r, nil
}
