package article

import (
	"errors"

	"github.com/google/uuid"
)

var ErrInvalidPriceUnit = errors.New("invalid price unit")

// PriceUnit is the single billing unit an article rents by.
type PriceUnit string

const (
	PerHour PriceUnit = "per_hour"
	PerDay  PriceUnit = "per_day"
	PerWeek PriceUnit = "per_week"
)

func NewPriceUnit(s string) (PriceUnit, error) {
	switch PriceUnit(s) {
	case PerHour, PerDay, PerWeek:
		return PriceUnit(s), nil
	default:
		return "", ErrInvalidPriceUnit
	}
}

type PublicationState string

const (
	StateDraft     PublicationState = "draft"
	StatePublished PublicationState = "published"
	StatePaused    PublicationState = "paused"
	StateDeleted   PublicationState = "deleted"
)

// Article is catalog data the engine consumes but never mutates. Price and
// deposit are snapshotted onto the rental at creation time.
type Article struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	Title        string
	State        PublicationState
	PriceUnit    PriceUnit
	PriceCents   int64
	DepositCents int64
}

// Rentable reports whether new rentals may be created against the article.
// Drafts stay rentable so owners can trial the flow before publishing.
func (a *Article) Rentable() bool {
	return a.State == StatePublished || a.State == StateDraft
}
