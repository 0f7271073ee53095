package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"lendhub/internal/domain/article"
	"lendhub/internal/domain/rental"
	"lendhub/internal/infra"
	"lendhub/internal/infra/db"
	"lendhub/internal/pkg/errs"
)

type ArticleRepository struct {
	db db.DBTX
}

func NewArticleRepository(dbtx db.DBTX) *ArticleRepository {
	return &ArticleRepository{db: dbtx}
}

func (r *ArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*article.Article, error) {
	var (
		a     article.Article
		state string
		unit  string
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, owner_id, title, state, price_unit, price_cents, deposit_cents
		FROM articles
		WHERE id = $1 AND state <> 'deleted'`,
		id,
	).Scan(&a.ID, &a.OwnerID, &a.Title, &state, &unit, &a.PriceCents, &a.DepositCents)
	if err != nil {
		return nil, infra.ClassifyErr("failed to find article by id", err)
	}

	a.State = article.PublicationState(state)
	a.PriceUnit = articlePriceUnit(unit)
	return &a, nil
}

// Blackouts reads the owner-blocked intervals. The table is optional; a
// missing relation surfaces as KindUnavailable and callers skip the check.
func (r *ArticleRepository) Blackouts(ctx context.Context, articleID uuid.UUID) ([]rental.Interval, error) {
	rows, err := r.db.Query(ctx, `
		SELECT starts_at, ends_at
		FROM article_blackouts
		WHERE article_id = $1
		ORDER BY starts_at`,
		articleID,
	)
	if err != nil {
		return nil, infra.ClassifyErr("failed to list article blackouts", err)
	}
	defer rows.Close()

	var out []rental.Interval
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.ClassifyErr("failed to scan blackout row", err)
		}
		iv, err := rental.NewInterval(start, end)
		if err != nil {
			return nil, errs.Wrap(err, "stored blackout interval is invalid")
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.ClassifyErr("failed to iterate blackout rows", err)
	}
	return out, nil
}

func articlePriceUnit(s string) article.PriceUnit {
	switch article.PriceUnit(s) {
	case article.PerHour, article.PerWeek:
		return article.PriceUnit(s)
	default:
		return article.PerDay
	}
}
