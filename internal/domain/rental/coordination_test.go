//go:build unit

package rental_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/domain/rental"
	"lendhub/internal/pkg/errs"
)

func proposeWindows(t *testing.T, r *rental.Rental, delivery, ret []string) {
	t.Helper()
	err := r.ProposeCoordination(rental.ModeMeetup, "Plaza Mayor, by the fountain", nil, delivery, ret, testNow)
	require.NoError(t, err)
}

func proposeDefaultWindows(t *testing.T, r *rental.Rental) {
	t.Helper()
	proposeWindows(t, r,
		[]string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
		[]string{"Wed 18:00-19:00", "Thu 09:00-10:00"})
}

func TestProposeCoordination(t *testing.T) {
	t.Run("meetup proposal with both window sets", func(t *testing.T) {
		r := newPaidRental(t)
		proposeDefaultWindows(t, r)

		c := r.Coordination
		assert.Equal(t, rental.ModeMeetup, c.Mode)
		assert.Len(t, c.DeliveryWindows, 2)
		assert.Len(t, c.ReturnWindows, 2)
		assert.Empty(t, c.ChosenDelivery)
		assert.Empty(t, c.ChosenReturn)
		assert.False(t, c.Confirmed)
	})

	t.Run("window count bounds apply to each leg", func(t *testing.T) {
		r := newPaidRental(t)

		err := r.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{"only one"}, []string{"a", "b"}, testNow)
		require.ErrorIs(t, err, errs.ErrValidation)

		err = r.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{"a", "b"}, []string{"a", "b", "c", "d"}, testNow)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("window label too long", func(t *testing.T) {
		r := newPaidRental(t)
		long := strings.Repeat("x", 121)

		err := r.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{long, "Sat"}, []string{"a", "b"}, testNow)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("delivery point snapshots the address", func(t *testing.T) {
		r := newPaidRental(t)
		pt := &rental.DeliveryPoint{Name: "Central locker", Address: "Station St 4"}

		err := r.ProposeCoordination(rental.ModeDeliveryPoint, "", pt,
			[]string{"Sat", "Sun"}, []string{"Mon", "Tue"}, testNow)
		require.NoError(t, err)
		assert.Equal(t, "Station St 4", r.Coordination.Address)
		require.NotNil(t, r.Coordination.DeliveryPoint)
	})

	t.Run("allowed while payment is pending", func(t *testing.T) {
		pending := newPendingRental(t)
		err := pending.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{"a", "b"}, []string{"c", "d"}, testNow)
		require.NoError(t, err)
		assert.True(t, pending.Coordination.Proposed())
	})

	t.Run("rejected once the article is in use and after close", func(t *testing.T) {
		inUse := newPaidRental(t)
		require.NoError(t, inUse.ConfirmDeliveryOTP(inUse.HandoverCode, "", testNow))
		err := inUse.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{"a", "b"}, []string{"c", "d"}, testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)

		closed := finalizedRental(t)
		err = closed.ProposeCoordination(rental.ModeMeetup, "somewhere", nil,
			[]string{"a", "b"}, []string{"c", "d"}, testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("reproposal resets selections and confirmation", func(t *testing.T) {
		r := newPaidRental(t)
		proposeDefaultWindows(t, r)
		require.NoError(t, r.AcceptWindow(rental.WindowDelivery, "Sat 10:00-12:00", testNow))
		require.NoError(t, r.AcceptWindow(rental.WindowReturn, "Wed 18:00-19:00", testNow))
		require.NoError(t, r.ConfirmCoordination(testNow))

		proposeWindows(t, r,
			[]string{"Mon 09:00-10:00", "Tue 18:00-19:00"},
			[]string{"Fri 10:00-11:00", "Sat 12:00-13:00"})
		assert.Empty(t, r.Coordination.ChosenDelivery)
		assert.Empty(t, r.Coordination.ChosenReturn)
		assert.False(t, r.Coordination.Confirmed)
		assert.Nil(t, r.Coordination.AcceptedAt)
	})
}

func TestAcceptWindow(t *testing.T) {
	t.Run("only proposed windows of the leg are acceptable", func(t *testing.T) {
		r := newPaidRental(t)
		proposeDefaultWindows(t, r)

		err := r.AcceptWindow(rental.WindowDelivery, "Fri 08:00-09:00", testNow)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)

		// A return window is not acceptable as a delivery one.
		err = r.AcceptWindow(rental.WindowDelivery, "Wed 18:00-19:00", testNow)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)

		require.NoError(t, r.AcceptWindow(rental.WindowDelivery, "Sun 16:00-18:00", testNow))
		assert.Equal(t, "Sun 16:00-18:00", r.Coordination.ChosenDelivery)

		require.NoError(t, r.AcceptWindow(rental.WindowReturn, "Thu 09:00-10:00", testNow))
		assert.Equal(t, "Thu 09:00-10:00", r.Coordination.ChosenReturn)
	})

	t.Run("nothing proposed yet", func(t *testing.T) {
		r := newPaidRental(t)
		err := r.AcceptWindow(rental.WindowDelivery, "Sat", testNow)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)
	})

	t.Run("rejected while payment is pending", func(t *testing.T) {
		r := newPendingRental(t)
		proposeDefaultWindows(t, r)

		err := r.AcceptWindow(rental.WindowDelivery, "Sat 10:00-12:00", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestConfirmCoordination(t *testing.T) {
	t.Run("requires a chosen window for both legs", func(t *testing.T) {
		r := newPaidRental(t)
		proposeDefaultWindows(t, r)

		err := r.ConfirmCoordination(testNow)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)

		require.NoError(t, r.AcceptWindow(rental.WindowDelivery, "Sat 10:00-12:00", testNow))
		err = r.ConfirmCoordination(testNow)
		require.ErrorIs(t, err, errs.ErrWindowNotProposed)
		assert.False(t, r.Coordination.Confirmed)

		require.NoError(t, r.AcceptWindow(rental.WindowReturn, "Wed 18:00-19:00", testNow))
		require.NoError(t, r.ConfirmCoordination(testNow))
		assert.True(t, r.Coordination.Confirmed)

		// idempotent
		require.NoError(t, r.ConfirmCoordination(testNow))
	})

	t.Run("rejected while payment is pending", func(t *testing.T) {
		r := newPendingRental(t)
		proposeDefaultWindows(t, r)

		err := r.ConfirmCoordination(testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
