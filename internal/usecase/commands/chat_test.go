//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/pkg/config"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/notify"
)

type chatFixture struct {
	*fixture
	chat commands.ChatCommands
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := newFixture(t)
	cfg := config.NewTestConfig()
	notifier := notify.NewNotifier(f.uow, f.clock)
	return &chatFixture{
		fixture: f,
		chat:    commands.NewChatCommands(f.uow, notifier, f.clock, cfg),
	}
}

func TestSendMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("participants can chat on a paid rental", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)

		m, err := f.chat.SendMessage(ctx, r.ID, f.renter.ID, "when can I pick it up?")
		require.NoError(t, err)
		assert.Equal(t, "when can I pick it up?", m.Body)

		// counterpart got exactly one notification for the message
		var chatNotes int
		for _, n := range f.uow.Notifications {
			if n.UserID == f.owner.ID && string(n.Kind) == "chat_message" {
				chatNotes++
			}
		}
		assert.Equal(t, 1, chatNotes)
	})

	t.Run("chat is closed before payment", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.createRental(t)

		_, err := f.chat.SendMessage(ctx, r.ID, f.renter.ID, "hello")
		require.ErrorIs(t, err, errs.ErrChatDisabled)
	})

	t.Run("stranger cannot chat", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)
		stranger := f.uow.SeedUser(user.RoleUser)

		_, err := f.chat.SendMessage(ctx, r.ID, stranger.ID, "hello")
		require.ErrorIs(t, err, errs.ErrNotParticipant)
	})

	t.Run("cooldown throttles the same sender", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)

		_, err := f.chat.SendMessage(ctx, r.ID, f.renter.ID, "first")
		require.NoError(t, err)

		f.clock.Add(time.Second)
		_, err = f.chat.SendMessage(ctx, r.ID, f.renter.ID, "second too fast")
		require.ErrorIs(t, err, errs.ErrChatCooldown)

		// the other side is not throttled by the sender's cooldown
		_, err = f.chat.SendMessage(ctx, r.ID, f.owner.ID, "owner reply")
		require.NoError(t, err)

		f.clock.Add(3 * time.Second)
		_, err = f.chat.SendMessage(ctx, r.ID, f.renter.ID, "second ok now")
		require.NoError(t, err)
	})

	t.Run("filtered content is rejected", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)

		_, err := f.chat.SendMessage(ctx, r.ID, f.renter.ID, "call me at 612 345 678")
		require.ErrorIs(t, err, errs.ErrMessageRejected)
		assert.Empty(t, f.uow.Messages)
	})

	t.Run("chat closes after cancellation", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)
		_, err := f.cmds.Cancel(ctx, r.ID, f.renter.ID, user.RoleUser, "")
		require.NoError(t, err)

		_, err = f.chat.SendMessage(ctx, r.ID, f.owner.ID, "too late")
		require.ErrorIs(t, err, errs.ErrChatDisabled)
	})
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("marker moves forward only", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)

		require.NoError(t, f.chat.MarkRead(ctx, r.ID, f.owner.ID))
		first := f.clock.Now()

		f.clock.Add(-time.Minute)
		require.NoError(t, f.chat.MarkRead(ctx, r.ID, f.owner.ID))

		key := r.ID.String() + "|" + f.owner.ID.String()
		assert.Equal(t, first, f.uow.ReadMarkers[key])
	})

	t.Run("stranger cannot mark", func(t *testing.T) {
		f := newChatFixture(t)
		r := f.paidRental(t)
		stranger := f.uow.SeedUser(user.RoleUser)

		err := f.chat.MarkRead(ctx, r.ID, stranger.ID)
		require.ErrorIs(t, err, errs.ErrNotParticipant)
	})
}

func TestCoordinationCommands(t *testing.T) {
	ctx := context.Background()

	newCoord := func(t *testing.T) (*chatFixture, commands.CoordinationCommands, *rental.Rental) {
		f := newChatFixture(t)
		notifier := notify.NewNotifier(f.uow, f.clock)
		coord := commands.NewCoordinationCommands(f.uow, notifier, f.clock)
		return f, coord, f.paidRental(t)
	}

	t.Run("owner proposes, renter accepts both legs, owner confirms", func(t *testing.T) {
		f, coord, r := newCoord(t)

		_, err := coord.Propose(ctx, r.ID, f.owner.ID, commands.ProposeCoordinationRequest{
			Mode:            "meetup",
			Address:         "Main square",
			DeliveryWindows: []string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			ReturnWindows:   []string{"Wed 18:00-19:00", "Thu 09:00-10:00"},
		})
		require.NoError(t, err)

		_, err = coord.AcceptWindow(ctx, r.ID, f.renter.ID, "delivery", "Sat 10:00-12:00")
		require.NoError(t, err)
		_, err = coord.AcceptWindow(ctx, r.ID, f.renter.ID, "return", "Wed 18:00-19:00")
		require.NoError(t, err)

		got, err := coord.Confirm(ctx, r.ID, f.owner.ID)
		require.NoError(t, err)
		assert.True(t, got.Coordination.Confirmed)
	})

	t.Run("confirmation waits for the return window", func(t *testing.T) {
		f, coord, r := newCoord(t)

		_, err := coord.Propose(ctx, r.ID, f.owner.ID, commands.ProposeCoordinationRequest{
			Mode:            "meetup",
			Address:         "Main square",
			DeliveryWindows: []string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			ReturnWindows:   []string{"Wed 18:00-19:00", "Thu 09:00-10:00"},
		})
		require.NoError(t, err)

		_, err = coord.AcceptWindow(ctx, r.ID, f.renter.ID, "delivery", "Sat 10:00-12:00")
		require.NoError(t, err)

		_, err = coord.Confirm(ctx, r.ID, f.owner.ID)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)
		assert.False(t, f.uow.Rentals[r.ID].Coordination.Confirmed)
	})

	t.Run("renter cannot propose", func(t *testing.T) {
		f, coord, r := newCoord(t)

		_, err := coord.Propose(ctx, r.ID, f.renter.ID, commands.ProposeCoordinationRequest{
			Mode:            "meetup",
			Address:         "Main square",
			DeliveryWindows: []string{"Sat", "Sun"},
			ReturnWindows:   []string{"Mon", "Tue"},
		})
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("delivery point proposal resolves the reference", func(t *testing.T) {
		f, coord, r := newCoord(t)
		pt := rental.DeliveryPoint{ID: uuid.New(), Name: "Locker A", Address: "Station St 1"}
		f.uow.Points = append(f.uow.Points, pt)

		got, err := coord.Propose(ctx, r.ID, f.owner.ID, commands.ProposeCoordinationRequest{
			Mode:            "delivery_point",
			DeliveryPointID: &pt.ID,
			DeliveryWindows: []string{"Sat", "Sun"},
			ReturnWindows:   []string{"Mon", "Tue"},
		})
		require.NoError(t, err)
		require.NotNil(t, got.Coordination.DeliveryPoint)
		assert.Equal(t, "Station St 1", got.Coordination.Address)
	})

	t.Run("unknown delivery point", func(t *testing.T) {
		f, coord, r := newCoord(t)
		id := uuid.New()

		_, err := coord.Propose(ctx, r.ID, f.owner.ID, commands.ProposeCoordinationRequest{
			Mode:            "delivery_point",
			DeliveryPointID: &id,
			DeliveryWindows: []string{"Sat", "Sun"},
			ReturnWindows:   []string{"Mon", "Tue"},
		})
		require.ErrorIs(t, err, errs.ErrDeliveryPointNotFound)
		assert.False(t, f.uow.Rentals[r.ID].Coordination.Proposed())
	})

	t.Run("unknown window kind", func(t *testing.T) {
		f, coord, r := newCoord(t)

		_, err := coord.AcceptWindow(ctx, r.ID, f.renter.ID, "pickup", "Sat")
		require.ErrorIs(t, err, errs.ErrValidation)
	})
}
