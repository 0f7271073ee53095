//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/notify"
	"lendhub/internal/usecase/queries"
	"lendhub/tests/common/fake"
)

type fixture struct {
	uow     *fake.UoW
	clock   *clock.MockClock
	cmds    commands.RentalCommands
	queries queries.RentalQueries
	renter  *user.User
	owner   *user.User
}

var fixtureNow = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	uow := fake.NewUoW()
	clk := clock.NewMockClock(fixtureNow)
	cfg := config.NewTestConfig()
	notifier := notify.NewNotifier(uow, clk)
	cmds := commands.NewRentalCommands(uow, notifier, clk, cfg)

	return &fixture{
		uow:     uow,
		clock:   clk,
		cmds:    cmds,
		queries: queries.NewRentalQueries(uow, cmds, clk, cfg),
		renter:  uow.SeedUser(user.RoleUser),
		owner:   uow.SeedUser(user.RoleUser),
	}
}

func (f *fixture) paidRental(t *testing.T) *rental.Rental {
	t.Helper()
	art := f.uow.SeedArticle(f.owner.ID)
	r, err := f.cmds.Create(context.Background(), commands.CreateRentalRequest{
		ArticleID: art.ID,
		Start:     f.clock.Now().Add(24 * time.Hour),
		End:       f.clock.Now().Add(72 * time.Hour),
	}, f.renter.ID)
	require.NoError(t, err)
	paid, err := f.cmds.Pay(context.Background(), r.ID, f.renter.ID)
	require.NoError(t, err)
	return paid
}

func TestGetRental(t *testing.T) {
	ctx := context.Background()

	t.Run("renter sees the codes, owner does not", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)

		renterView, err := f.queries.Get(ctx, r.ID, f.renter.ID, queries.RoleUser)
		require.NoError(t, err)
		assert.NotEmpty(t, renterView.HandoverCode)
		assert.NotEmpty(t, renterView.ReturnCode)

		ownerView, err := f.queries.Get(ctx, r.ID, f.owner.ID, queries.RoleUser)
		require.NoError(t, err)
		assert.Empty(t, ownerView.HandoverCode)
		assert.Empty(t, ownerView.ReturnCode)
	})

	t.Run("stranger is rejected, admin is not", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)
		stranger := f.uow.SeedUser(user.RoleUser)

		_, err := f.queries.Get(ctx, r.ID, stranger.ID, queries.RoleUser)
		require.ErrorIs(t, err, errs.ErrNotParticipant)

		adminView, err := f.queries.Get(ctx, r.ID, stranger.ID, queries.RoleAdmin)
		require.NoError(t, err)
		assert.Empty(t, adminView.HandoverCode)
	})

	t.Run("coordination address visible once paid", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)

		notifier := notify.NewNotifier(f.uow, f.clock)
		coord := commands.NewCoordinationCommands(f.uow, notifier, f.clock)
		_, err := coord.Propose(ctx, r.ID, f.owner.ID, commands.ProposeCoordinationRequest{
			Mode:            "meetup",
			Address:         "Main square",
			DeliveryWindows: []string{"Sat", "Sun"},
			ReturnWindows:   []string{"Mon", "Tue"},
		})
		require.NoError(t, err)

		view, err := f.queries.Get(ctx, r.ID, f.renter.ID, queries.RoleUser)
		require.NoError(t, err)
		require.NotNil(t, view.Coordination)
		assert.Equal(t, "Main square", view.Coordination.Address)
	})

	t.Run("get applies the lazy expiry", func(t *testing.T) {
		f := newFixture(t)
		art := f.uow.SeedArticle(f.owner.ID)
		r, err := f.cmds.Create(ctx, commands.CreateRentalRequest{
			ArticleID: art.ID,
			Start:     f.clock.Now().Add(24 * time.Hour),
			End:       f.clock.Now().Add(48 * time.Hour),
		}, f.renter.ID)
		require.NoError(t, err)

		f.clock.Add(30 * time.Minute)
		view, err := f.queries.Get(ctx, r.ID, f.renter.ID, queries.RoleUser)
		require.NoError(t, err)
		assert.Equal(t, "expired", view.State)
	})
}

func TestInbox(t *testing.T) {
	ctx := context.Background()

	t.Run("role and bucket filtering", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)

		asRenter, err := f.queries.Inbox(ctx, f.renter.ID, queries.InboxRequest{Role: "renter", Bucket: "open"})
		require.NoError(t, err)
		require.Len(t, asRenter.Items, 1)
		assert.Equal(t, r.ID, asRenter.Items[0].ID)
		assert.Equal(t, int64(1), asRenter.Total)

		asOwner, err := f.queries.Inbox(ctx, f.owner.ID, queries.InboxRequest{Role: "owner", Bucket: "open"})
		require.NoError(t, err)
		require.Len(t, asOwner.Items, 1)

		closed, err := f.queries.Inbox(ctx, f.renter.ID, queries.InboxRequest{Role: "renter", Bucket: "closed"})
		require.NoError(t, err)
		assert.Empty(t, closed.Items)
	})

	t.Run("listing expires stale pending rentals", func(t *testing.T) {
		f := newFixture(t)
		art := f.uow.SeedArticle(f.owner.ID)
		r, err := f.cmds.Create(ctx, commands.CreateRentalRequest{
			ArticleID: art.ID,
			Start:     f.clock.Now().Add(24 * time.Hour),
			End:       f.clock.Now().Add(48 * time.Hour),
		}, f.renter.ID)
		require.NoError(t, err)

		f.clock.Add(time.Hour)
		page, err := f.queries.Inbox(ctx, f.renter.ID, queries.InboxRequest{Role: "renter"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "expired", page.Items[0].State)
		assert.Equal(t, rental.PublicExpired, f.uow.Rentals[r.ID].PublicState())
	})
}

func TestOccupancy(t *testing.T) {
	ctx := context.Background()

	t.Run("lists active slots without party data", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)

		slots, err := f.queries.Occupancy(ctx, r.ArticleID)
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.Equal(t, r.ID, slots[0].RentalID)
		assert.Equal(t, "paid", slots[0].State)
	})

	t.Run("stale pending slots drop out", func(t *testing.T) {
		f := newFixture(t)
		art := f.uow.SeedArticle(f.owner.ID)
		_, err := f.cmds.Create(ctx, commands.CreateRentalRequest{
			ArticleID: art.ID,
			Start:     f.clock.Now().Add(24 * time.Hour),
			End:       f.clock.Now().Add(48 * time.Hour),
		}, f.renter.ID)
		require.NoError(t, err)

		f.clock.Add(time.Hour)
		slots, err := f.queries.Occupancy(ctx, art.ID)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("unknown article", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.queries.Occupancy(ctx, f.renter.ID)
		require.ErrorIs(t, err, errs.ErrArticleNotFound)
	})
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("participant sees ordered events", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)

		entries, err := f.queries.Timeline(ctx, r.ID, f.owner.ID, queries.RoleUser)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "created", entries[0].Type)
		assert.Equal(t, "paid", entries[1].Type)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newFixture(t)
		r := f.paidRental(t)
		stranger := f.uow.SeedUser(user.RoleUser)

		_, err := f.queries.Timeline(ctx, r.ID, stranger.ID, queries.RoleUser)
		require.ErrorIs(t, err, errs.ErrNotParticipant)
	})
}

func TestDeliveryPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("missing table degrades to empty list", func(t *testing.T) {
		f := newFixture(t)
		f.uow.PointsUnavailable = true

		points, err := f.queries.DeliveryPoints(ctx)
		require.NoError(t, err)
		assert.Empty(t, points)
	})
}
