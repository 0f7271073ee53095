// Package fake provides an in-memory UnitOfWork for usecase tests. It
// mirrors the error kinds of the Postgres repositories so usecases see
// the same failure surface, minus real transactionality.
package fake

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/article"
	"lendhub/internal/domain/chat"
	"lendhub/internal/domain/notification"
	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/usecase/shared"
)

type UoW struct {
	Users          map[uuid.UUID]*user.User
	Articles       map[uuid.UUID]*article.Article
	BlackoutsByArt map[uuid.UUID][]rental.Interval
	Rentals        map[uuid.UUID]*rental.Rental
	Incidents      map[uuid.UUID]*rental.Incident // keyed by rental id
	Messages       []*chat.Message
	ReadMarkers    map[string]time.Time // rentalID|userID
	Notifications  []*notification.Notification
	Events         map[uuid.UUID][]rental.Event
	Points         []rental.DeliveryPoint

	// Simulate absent optional tables.
	BlackoutsUnavailable     bool
	PointsUnavailable        bool
	NotificationsUnavailable bool
	IncidentsUnavailable     bool
}

func NewUoW() *UoW {
	return &UoW{
		Users:          make(map[uuid.UUID]*user.User),
		Articles:       make(map[uuid.UUID]*article.Article),
		BlackoutsByArt: make(map[uuid.UUID][]rental.Interval),
		Rentals:        make(map[uuid.UUID]*rental.Rental),
		Incidents:      make(map[uuid.UUID]*rental.Incident),
		ReadMarkers:    make(map[string]time.Time),
		Events:         make(map[uuid.UUID][]rental.Event),
	}
}

func (u *UoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{u})
}

func (u *UoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{u})
}

func (u *UoW) WithDB(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{u})
}

// SeedUser registers a complete, verified profile.
func (u *UoW) SeedUser(role user.Role) *user.User {
	usr := &user.User{
		ID:            uuid.New(),
		Email:         "person@example.com",
		EmailVerified: true,
		Role:          role,
		Phone:         "600111222",
		City:          "Valencia",
		Region:        "VC",
	}
	u.Users[usr.ID] = usr
	return usr
}

func (u *UoW) SeedArticle(ownerID uuid.UUID) *article.Article {
	a := &article.Article{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		Title:        "Camera kit",
		State:        article.StatePublished,
		PriceUnit:    article.PerDay,
		PriceCents:   3000,
		DepositCents: 12000,
	}
	u.Articles[a.ID] = a
	return a
}

type fakeTx struct{ u *UoW }

func (t *fakeTx) DB() db.DBTX { return nil }

func (t *fakeTx) Rentals() shared.RentalRepository             { return &rentalRepo{t.u} }
func (t *fakeTx) Articles() shared.ArticleRepository           { return &articleRepo{t.u} }
func (t *fakeTx) Incidents() shared.IncidentRepository         { return &incidentRepo{t.u} }
func (t *fakeTx) Messages() shared.MessageRepository           { return &messageRepo{t.u} }
func (t *fakeTx) Notifications() shared.NotificationRepository { return &notificationRepo{t.u} }
func (t *fakeTx) Events() shared.EventRepository               { return &eventRepo{t.u} }
func (t *fakeTx) DeliveryPoints() shared.DeliveryPointRepository {
	return &deliveryPointRepo{t.u}
}
func (t *fakeTx) Users() shared.UserRepository { return &userRepo{t.u} }

type rentalRepo struct{ u *UoW }

func (r *rentalRepo) Create(_ context.Context, rent *rental.Rental) error {
	if _, ok := r.u.Rentals[rent.ID]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "rental already exists", nil)
	}
	r.u.Rentals[rent.ID] = rent
	return nil
}

func (r *rentalRepo) Update(_ context.Context, rent *rental.Rental) error {
	if _, ok := r.u.Rentals[rent.ID]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "rental not found on update", nil)
	}
	r.u.Rentals[rent.ID] = rent
	return nil
}

func (r *rentalRepo) FindByID(_ context.Context, id uuid.UUID) (*rental.Rental, error) {
	rent, ok := r.u.Rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "rental not found", nil)
	}
	return rent, nil
}

func (r *rentalRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*rental.Rental, error) {
	return r.FindByID(ctx, id)
}

func (r *rentalRepo) LockConflicting(_ context.Context, articleID uuid.UUID, iv rental.Interval) ([]*rental.Rental, error) {
	var out []*rental.Rental
	for _, rent := range r.u.Rentals {
		if rent.ArticleID != articleID {
			continue
		}
		active := false
		for _, s := range rental.ActiveStatuses {
			if rent.Status == s {
				active = true
				break
			}
		}
		if active && rent.Interval.Overlaps(iv) {
			out = append(out, rent)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *rentalRepo) ListInbox(_ context.Context, f shared.InboxFilter) ([]*rental.Rental, error) {
	var out []*rental.Rental
	for _, rent := range r.u.Rentals {
		if !inboxMatch(rent, f) {
			continue
		}
		out = append(out, rent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if f.Offset < len(out) {
		out = out[f.Offset:]
	} else {
		out = nil
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *rentalRepo) CountInbox(_ context.Context, f shared.InboxFilter) (int64, error) {
	var n int64
	for _, rent := range r.u.Rentals {
		if inboxMatch(rent, f) {
			n++
		}
	}
	return n, nil
}

func (r *rentalRepo) ListActiveByArticle(_ context.Context, articleID uuid.UUID) ([]*rental.Rental, error) {
	var out []*rental.Rental
	for _, rent := range r.u.Rentals {
		if rent.ArticleID != articleID {
			continue
		}
		for _, s := range rental.ActiveStatuses {
			if rent.Status == s {
				out = append(out, rent)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Interval.Start().Before(out[j].Interval.Start()) })
	return out, nil
}

func inboxMatch(rent *rental.Rental, f shared.InboxFilter) bool {
	switch f.Role {
	case shared.InboxAsOwner:
		if rent.OwnerID != f.UserID {
			return false
		}
	default:
		if rent.RenterID != f.UserID {
			return false
		}
	}
	closed := rent.Status == rental.StatusCancelled || rent.Status == rental.StatusCompleted
	switch f.Bucket {
	case shared.BucketOpen:
		return !closed
	case shared.BucketClosed:
		return closed
	default:
		return true
	}
}

func sortByCreated(rentals []*rental.Rental) {
	sort.Slice(rentals, func(i, j int) bool { return rentals[i].CreatedAt.Before(rentals[j].CreatedAt) })
}

type articleRepo struct{ u *UoW }

func (r *articleRepo) FindByID(_ context.Context, id uuid.UUID) (*article.Article, error) {
	a, ok := r.u.Articles[id]
	if !ok || a.State == article.StateDeleted {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "article not found", nil)
	}
	return a, nil
}

func (r *articleRepo) Blackouts(_ context.Context, articleID uuid.UUID) ([]rental.Interval, error) {
	if r.u.BlackoutsUnavailable {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "article_blackouts missing", nil)
	}
	return r.u.BlackoutsByArt[articleID], nil
}

type incidentRepo struct{ u *UoW }

func (r *incidentRepo) Create(_ context.Context, inc *rental.Incident) error {
	if r.u.IncidentsUnavailable {
		return infra.WrapRepoErr(infra.KindUnavailable, "incidents missing", nil)
	}
	if _, ok := r.u.Incidents[inc.RentalID]; ok {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "incident already exists", nil)
	}
	r.u.Incidents[inc.RentalID] = inc
	return nil
}

func (r *incidentRepo) Update(_ context.Context, inc *rental.Incident) error {
	if r.u.IncidentsUnavailable {
		return infra.WrapRepoErr(infra.KindUnavailable, "incidents missing", nil)
	}
	if _, ok := r.u.Incidents[inc.RentalID]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "incident not found on update", nil)
	}
	r.u.Incidents[inc.RentalID] = inc
	return nil
}

func (r *incidentRepo) FindByRentalID(_ context.Context, rentalID uuid.UUID) (*rental.Incident, error) {
	if r.u.IncidentsUnavailable {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "incidents missing", nil)
	}
	inc, ok := r.u.Incidents[rentalID]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "incident not found", nil)
	}
	return inc, nil
}

type messageRepo struct{ u *UoW }

func (r *messageRepo) Create(_ context.Context, m *chat.Message) error {
	r.u.Messages = append(r.u.Messages, m)
	return nil
}

func (r *messageRepo) ListByRental(_ context.Context, rentalID uuid.UUID, limit int) ([]*chat.Message, error) {
	var out []*chat.Message
	for _, m := range r.u.Messages {
		if m.RentalID == rentalID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SentAt.Before(out[j].SentAt) })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *messageRepo) LastSentAt(_ context.Context, rentalID, senderID uuid.UUID) (*time.Time, error) {
	var last *time.Time
	for _, m := range r.u.Messages {
		if m.RentalID == rentalID && m.SenderID == senderID {
			if last == nil || m.SentAt.After(*last) {
				at := m.SentAt
				last = &at
			}
		}
	}
	return last, nil
}

func (r *messageRepo) UnreadCount(_ context.Context, rentalID, userID uuid.UUID) (int64, error) {
	marker := r.u.ReadMarkers[markerKey(rentalID, userID)]
	var n int64
	for _, m := range r.u.Messages {
		if m.RentalID == rentalID && m.SenderID != userID && m.SentAt.After(marker) {
			n++
		}
	}
	return n, nil
}

func (r *messageRepo) UnreadTotal(ctx context.Context, userID uuid.UUID) (int64, error) {
	var total int64
	for _, rent := range r.u.Rentals {
		// Only rentals whose chat is still open count toward the badge.
		if !rent.ChatEnabled(userID) {
			continue
		}
		n, _ := r.UnreadCount(ctx, rent.ID, userID)
		total += n
	}
	return total, nil
}

func (r *messageRepo) UpsertReadMarker(_ context.Context, rentalID, userID uuid.UUID, at time.Time) error {
	key := markerKey(rentalID, userID)
	if existing, ok := r.u.ReadMarkers[key]; !ok || at.After(existing) {
		r.u.ReadMarkers[key] = at
	}
	return nil
}

func markerKey(rentalID, userID uuid.UUID) string {
	return rentalID.String() + "|" + userID.String()
}

type notificationRepo struct{ u *UoW }

func (r *notificationRepo) Insert(_ context.Context, n *notification.Notification) (bool, error) {
	if r.u.NotificationsUnavailable {
		return false, infra.WrapRepoErr(infra.KindUnavailable, "notifications missing", nil)
	}
	for _, existing := range r.u.Notifications {
		if existing.UserID == n.UserID && existing.EventKey() == n.EventKey() {
			return false, nil
		}
	}
	r.u.Notifications = append(r.u.Notifications, n)
	return true, nil
}

func (r *notificationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error) {
	if r.u.NotificationsUnavailable {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "notifications missing", nil)
	}
	var out []*notification.Notification
	for _, n := range r.u.Notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *notificationRepo) UnreadCount(_ context.Context, userID uuid.UUID) (int64, error) {
	if r.u.NotificationsUnavailable {
		return 0, infra.WrapRepoErr(infra.KindUnavailable, "notifications missing", nil)
	}
	var n int64
	for _, item := range r.u.Notifications {
		if item.UserID == userID && !item.Read {
			n++
		}
	}
	return n, nil
}

func (r *notificationRepo) MarkRead(_ context.Context, id, userID uuid.UUID) (bool, error) {
	for _, item := range r.u.Notifications {
		if item.ID == id && item.UserID == userID {
			item.Read = true
			return true, nil
		}
	}
	return false, nil
}

func (r *notificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range r.u.Notifications {
		if item.UserID == userID && !item.Read {
			item.Read = true
			n++
		}
	}
	return n, nil
}

type eventRepo struct{ u *UoW }

func (r *eventRepo) Append(_ context.Context, rentalID uuid.UUID, events []rental.Event) error {
	r.u.Events[rentalID] = append(r.u.Events[rentalID], events...)
	return nil
}

func (r *eventRepo) ListByRental(_ context.Context, rentalID uuid.UUID) ([]rental.Event, error) {
	return r.u.Events[rentalID], nil
}

type deliveryPointRepo struct{ u *UoW }

func (r *deliveryPointRepo) List(_ context.Context) ([]rental.DeliveryPoint, error) {
	if r.u.PointsUnavailable {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "delivery_points missing", nil)
	}
	return r.u.Points, nil
}

func (r *deliveryPointRepo) FindByID(_ context.Context, id uuid.UUID) (*rental.DeliveryPoint, error) {
	if r.u.PointsUnavailable {
		return nil, infra.WrapRepoErr(infra.KindUnavailable, "delivery_points missing", nil)
	}
	for i := range r.u.Points {
		if r.u.Points[i].ID == id {
			return &r.u.Points[i], nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "delivery point not found", nil)
}

type userRepo struct{ u *UoW }

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	usr, ok := r.u.Users[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "user not found", nil)
	}
	return usr, nil
}
