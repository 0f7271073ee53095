//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestUser inserts a user with a complete, verified profile so rental
// creation is not blocked by the profile gate.
func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, email, email_verified, role, phone, city, region)
		VALUES ($1, $2, TRUE, $3, '+34600000000', 'Madrid', 'Madrid')
		ON CONFLICT (email) DO NOTHING`,
		userID, email, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateIncompleteUser inserts a user missing phone and location, for
// exercising the profile gate.
func CreateIncompleteUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO users (id, email, email_verified, role, phone, city, region)
		VALUES ($1, $2, TRUE, 'user', '', '', '')`,
		userID, email)
	require.NoError(t, err)

	return userID
}

func CreateTestArticle(t *testing.T, db DBLike, ownerID uuid.UUID, title string, priceCents, depositCents int64) uuid.UUID {
	t.Helper()

	articleID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, `
		INSERT INTO articles (id, owner_id, title, state, price_unit, price_cents, deposit_cents)
		VALUES ($1, $2, $3, 'published', 'per_day', $4, $5)`,
		articleID, ownerID, title, priceCents, depositCents)
	require.NoError(t, err)

	return articleID
}

func CreateBlackout(t *testing.T, db DBLike, articleID uuid.UUID, startsAt, endsAt time.Time) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO article_blackouts (article_id, starts_at, ends_at)
		VALUES ($1, $2, $3)`,
		articleID, startsAt, endsAt)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO delivery_points (id, name, address) VALUES
		    (gen_random_uuid(), 'Central Station Lockers', 'Plaza de la Estacion 1'),
		    (gen_random_uuid(), 'North Market', 'Calle Mayor 15')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var tbl string
			if err := rows.Scan(&tbl); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, tbl)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
