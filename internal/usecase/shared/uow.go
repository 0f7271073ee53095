package shared

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/article"
	"lendhub/internal/domain/chat"
	"lendhub/internal/domain/notification"
	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/infra/db"
)

// UnitOfWork owns transaction boundaries. Within runs fn inside a
// read-committed transaction with retry on serialization failures;
// WithinReadOnly gives a consistent multi-table snapshot; WithDB runs
// single statements on the pool without an explicit transaction.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithDB(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx hands out repositories bound to the current transaction.
type Tx interface {
	Rentals() RentalRepository
	Articles() ArticleRepository
	Incidents() IncidentRepository
	Messages() MessageRepository
	Notifications() NotificationRepository
	Events() EventRepository
	DeliveryPoints() DeliveryPointRepository
	Users() UserRepository
	DB() db.DBTX
}

// InboxRole selects which side of the rental the listing shows.
type InboxRole string

const (
	InboxAsRenter InboxRole = "renter"
	InboxAsOwner  InboxRole = "owner"
)

// InboxBucket partitions the listing by derived public state.
type InboxBucket string

const (
	BucketAll    InboxBucket = "all"
	BucketOpen   InboxBucket = "open"
	BucketClosed InboxBucket = "closed"
)

type InboxFilter struct {
	UserID uuid.UUID
	Role   InboxRole
	Bucket InboxBucket
	Limit  int
	Offset int
}

type RentalRepository interface {
	Create(ctx context.Context, r *rental.Rental) error
	Update(ctx context.Context, r *rental.Rental) error
	FindByID(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	// FindByIDForUpdate locks the row for the rest of the transaction.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*rental.Rental, error)
	// LockConflicting locks and returns the active rentals of the article
	// that overlap the interval, so two concurrent bookings serialize.
	LockConflicting(ctx context.Context, articleID uuid.UUID, iv rental.Interval) ([]*rental.Rental, error)
	ListInbox(ctx context.Context, f InboxFilter) ([]*rental.Rental, error)
	CountInbox(ctx context.Context, f InboxFilter) (int64, error)
	ListActiveByArticle(ctx context.Context, articleID uuid.UUID) ([]*rental.Rental, error)
}

type ArticleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*article.Article, error)
	// Blackouts lists the owner-blocked intervals of the article.
	Blackouts(ctx context.Context, articleID uuid.UUID) ([]rental.Interval, error)
}

type IncidentRepository interface {
	Create(ctx context.Context, inc *rental.Incident) error
	Update(ctx context.Context, inc *rental.Incident) error
	FindByRentalID(ctx context.Context, rentalID uuid.UUID) (*rental.Incident, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *chat.Message) error
	ListByRental(ctx context.Context, rentalID uuid.UUID, limit int) ([]*chat.Message, error)
	LastSentAt(ctx context.Context, rentalID, senderID uuid.UUID) (*time.Time, error)
	UnreadCount(ctx context.Context, rentalID, userID uuid.UUID) (int64, error)
	UnreadTotal(ctx context.Context, userID uuid.UUID) (int64, error)
	UpsertReadMarker(ctx context.Context, rentalID, userID uuid.UUID, at time.Time) error
}

type NotificationRepository interface {
	// Insert stores the notification unless one with the same recipient
	// and event key already exists; inserted reports which happened.
	Insert(ctx context.Context, n *notification.Notification) (inserted bool, err error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*notification.Notification, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (bool, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type EventRepository interface {
	Append(ctx context.Context, rentalID uuid.UUID, events []rental.Event) error
	ListByRental(ctx context.Context, rentalID uuid.UUID) ([]rental.Event, error)
}

type DeliveryPointRepository interface {
	List(ctx context.Context) ([]rental.DeliveryPoint, error)
	FindByID(ctx context.Context, id uuid.UUID) (*rental.DeliveryPoint, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
}
