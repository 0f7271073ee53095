//go:build unit

package rental_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lendhub/internal/domain/article"
	"lendhub/internal/domain/rental"
	"lendhub/internal/pkg/errs"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func testArticle() *article.Article {
	return &article.Article{
		ID:           uuid.New(),
		OwnerID:      uuid.New(),
		Title:        "Mountain bike",
		State:        article.StatePublished,
		PriceUnit:    article.PerDay,
		PriceCents:   2500,
		DepositCents: 10000,
	}
}

func mustInterval(t *testing.T, start, end time.Time) rental.Interval {
	t.Helper()
	iv, err := rental.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func newPendingRental(t *testing.T) *rental.Rental {
	t.Helper()
	a := testArticle()
	iv := mustInterval(t, testNow.Add(24*time.Hour), testNow.Add(72*time.Hour))
	r, err := rental.New(a, uuid.New(), iv, testNow)
	require.NoError(t, err)
	r.TakeEvents()
	return r
}

func newPaidRental(t *testing.T) *rental.Rental {
	t.Helper()
	r := newPendingRental(t)
	changed, err := r.Pay(testNow)
	require.NoError(t, err)
	require.True(t, changed)
	r.TakeEvents()
	return r
}

func TestNewRental(t *testing.T) {
	t.Run("snapshots price and deposit", func(t *testing.T) {
		a := testArticle()
		iv := mustInterval(t, testNow.Add(24*time.Hour), testNow.Add(72*time.Hour))

		r, err := rental.New(a, uuid.New(), iv, testNow)
		require.NoError(t, err)

		assert.Equal(t, rental.StatusPendingPayment, r.Status)
		assert.Equal(t, 2, r.Units)
		assert.Equal(t, int64(5000), r.Subtotal.Cents())
		assert.Equal(t, int64(10000), r.Deposit.Cents())
		assert.Equal(t, a.OwnerID, r.OwnerID)
		assert.Empty(t, r.HandoverCode)

		evs := r.TakeEvents()
		require.Len(t, evs, 1)
		assert.Equal(t, rental.EventCreated, evs[0].Type)
	})

	t.Run("pricing snapshot matches the article", func(t *testing.T) {
		a := testArticle()
		renterID := uuid.New()
		iv := mustInterval(t, testNow.Add(24*time.Hour), testNow.Add(72*time.Hour))

		actual, err := rental.New(a, renterID, iv, testNow)
		require.NoError(t, err)

		expected := &rental.Rental{
			ArticleID: a.ID,
			RenterID:  renterID,
			OwnerID:   a.OwnerID,
			Interval:  iv,
			PriceUnit: article.PerDay,
			UnitPrice: rental.NewMoney(2500),
			Units:     2,
			Subtotal:  rental.NewMoney(5000),
			Deposit:   rental.NewMoney(10000),
			Status:    rental.StatusPendingPayment,
			CreatedAt: testNow,
			UpdatedAt: testNow,
		}

		opts := []cmp.Option{
			cmp.AllowUnexported(rental.Money{}, rental.Interval{}),
			cmpopts.IgnoreUnexported(rental.Rental{}),
			cmpopts.IgnoreFields(rental.Rental{}, "ID"),
			cmpopts.EquateEmpty(),
		}
		if diff := cmp.Diff(expected, actual, opts...); diff != "" {
			t.Errorf("rental mismatch (-expected +actual):\n%s", diff)
		}
	})

	t.Run("owner cannot rent own article", func(t *testing.T) {
		a := testArticle()
		iv := mustInterval(t, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))

		_, err := rental.New(a, a.OwnerID, iv, testNow)
		require.ErrorIs(t, err, errs.ErrOwnArticle)
	})

	t.Run("paused article is not rentable", func(t *testing.T) {
		a := testArticle()
		a.State = article.StatePaused
		iv := mustInterval(t, testNow.Add(24*time.Hour), testNow.Add(48*time.Hour))

		_, err := rental.New(a, uuid.New(), iv, testNow)
		require.ErrorIs(t, err, errs.ErrArticleUnavailable)
	})
}

func TestPay(t *testing.T) {
	t.Run("mints both codes once", func(t *testing.T) {
		r := newPendingRental(t)

		changed, err := r.Pay(testNow)
		require.NoError(t, err)
		require.True(t, changed)

		assert.Equal(t, rental.StatusPaid, r.Status)
		require.NotNil(t, r.PaidAt)
		assert.True(t, rental.ValidOTPFormat(r.HandoverCode))
		assert.True(t, rental.ValidOTPFormat(r.ReturnCode))

		handover, ret := r.HandoverCode, r.ReturnCode
		changed, err = r.Pay(testNow.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, handover, r.HandoverCode)
		assert.Equal(t, ret, r.ReturnCode)
	})

	t.Run("cancelled rental cannot be paid", func(t *testing.T) {
		r := newPendingRental(t)
		_, changed, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		require.True(t, changed)

		_, err = r.Pay(testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestExpire(t *testing.T) {
	t.Run("fires only past the window", func(t *testing.T) {
		r := newPendingRental(t)
		ttl := 15 * time.Minute

		assert.False(t, r.Expirable(testNow.Add(10*time.Minute), ttl))
		assert.True(t, r.Expirable(testNow.Add(16*time.Minute), ttl))
	})

	t.Run("derives the expired public state", func(t *testing.T) {
		r := newPendingRental(t)

		require.True(t, r.Expire(testNow.Add(20*time.Minute)))
		assert.Equal(t, rental.StatusCancelled, r.Status)
		assert.Equal(t, rental.PublicExpired, r.PublicState())

		assert.False(t, r.Expire(testNow.Add(21*time.Minute)))
	})

	t.Run("paid rental never expires", func(t *testing.T) {
		r := newPaidRental(t)
		assert.False(t, r.Expirable(testNow.Add(time.Hour), 15*time.Minute))
		assert.False(t, r.Expire(testNow.Add(time.Hour)))
	})
}

func TestCancel(t *testing.T) {
	t.Run("renter before payment refunds nothing", func(t *testing.T) {
		r := newPendingRental(t)

		refund, changed, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.True(t, refund.IsZero())
		assert.Equal(t, rental.PublicCancelled, r.PublicState())
	})

	t.Run("renter after payment refunds subtotal plus deposit", func(t *testing.T) {
		r := newPaidRental(t)

		refund, changed, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, int64(15000), refund.Cents())
	})

	t.Run("owner needs a note", func(t *testing.T) {
		r := newPaidRental(t)

		_, _, err := r.Cancel(rental.PartyOwner, "   ", testNow)
		require.ErrorIs(t, err, errs.ErrNoteRequired)

		refund, changed, err := r.Cancel(rental.PartyOwner, "bike got stolen", testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, int64(15000), refund.Cents())
	})

	t.Run("owner cannot cancel before payment", func(t *testing.T) {
		r := newPendingRental(t)

		_, _, err := r.Cancel(rental.PartyOwner, "changed my mind", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("renter cannot cancel once in use", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))

		_, _, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("admin cancels any open rental with deposit refund", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))

		refund, changed, err := r.Cancel(rental.PartyAdmin, "dispute escalated", testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, r.Deposit.Cents(), refund.Cents())
	})

	t.Run("admin cannot cancel a completed rental", func(t *testing.T) {
		r := finalizedRental(t)

		_, _, err := r.Cancel(rental.PartyAdmin, "", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("second cancel is a no-op", func(t *testing.T) {
		r := newPendingRental(t)
		_, changed, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		require.True(t, changed)

		refund, changed, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.True(t, refund.IsZero())
	})
}

func TestHandover(t *testing.T) {
	t.Run("non OTP path passes through confirmed", func(t *testing.T) {
		r := newPaidRental(t)

		changed, err := r.ConfirmDelivery(testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, rental.StatusConfirmed, r.Status)

		changed, err = r.MarkInUse(testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, rental.PublicInUse, r.PublicState())
	})

	t.Run("OTP delivery jumps straight to in use", func(t *testing.T) {
		r := newPaidRental(t)

		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "scratch on left pedal", testNow))

		assert.Equal(t, rental.StatusInUse, r.Status)
		assert.True(t, r.Delivered)
		assert.Equal(t, "scratch on left pedal", r.DeliveryChecklist)
	})

	t.Run("wrong handover code", func(t *testing.T) {
		r := newPaidRental(t)

		wrong := "000000"
		if r.HandoverCode == wrong {
			wrong = "000001"
		}
		err := r.ConfirmDeliveryOTP(wrong, "", testNow)
		require.ErrorIs(t, err, errs.ErrBadOTP)
		assert.Equal(t, rental.StatusPaid, r.Status)
	})

	t.Run("return code does not open delivery", func(t *testing.T) {
		r := newPaidRental(t)

		err := r.ConfirmDeliveryOTP(r.ReturnCode, "", testNow)
		require.ErrorIs(t, err, errs.ErrBadOTP)
	})

	t.Run("delivery OTP before payment is rejected", func(t *testing.T) {
		r := newPendingRental(t)

		err := r.ConfirmDeliveryOTP("123456", "", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestReturnAndFinalize(t *testing.T) {
	t.Run("return keeps the rental in use until finalized", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))

		changed, err := r.MarkReturned(testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, rental.StatusInUse, r.Status)
		assert.Equal(t, rental.PublicReturned, r.PublicState())

		changed, err = r.Finalize(testNow)
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, rental.PublicFinalized, r.PublicState())
		assert.True(t, r.DepositReleased)
	})

	t.Run("return OTP cannot be replayed", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))
		require.NoError(t, r.ConfirmReturnOTP(r.ReturnCode, "all good", testNow))

		err := r.ConfirmReturnOTP(r.ReturnCode, "", testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("finalize requires the returned flag", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))

		_, err := r.Finalize(testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestIncident(t *testing.T) {
	t.Run("report and release", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))
		require.NoError(t, r.ReportIncident(testNow))
		assert.Equal(t, rental.PublicIncident, r.PublicState())

		require.NoError(t, r.ResolveIncident(rental.DecisionRelease, rental.NewMoney(0), testNow))
		assert.Equal(t, rental.PublicFinalized, r.PublicState())
		assert.True(t, r.DepositReleased)
	})

	t.Run("retention keeps the deposit held", func(t *testing.T) {
		r := newPaidRental(t)
		require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))
		require.NoError(t, r.ReportIncident(testNow))

		require.NoError(t, r.ResolveIncident(rental.DecisionRetainTotal, r.Deposit, testNow))
		assert.False(t, r.DepositReleased)
		assert.Equal(t, rental.StatusCompleted, r.Status)
	})

	t.Run("completed rental cannot gain an incident", func(t *testing.T) {
		r := finalizedRental(t)
		require.ErrorIs(t, r.ReportIncident(testNow), errs.ErrInvalidState)
	})

	t.Run("resolution outside incident state is rejected", func(t *testing.T) {
		r := newPaidRental(t)
		err := r.ResolveIncident(rental.DecisionRelease, rental.NewMoney(0), testNow)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestVisibility(t *testing.T) {
	t.Run("codes are renter-only and post-payment", func(t *testing.T) {
		r := newPendingRental(t)
		assert.False(t, r.CodesVisibleTo(r.RenterID))

		changed, err := r.Pay(testNow)
		require.NoError(t, err)
		require.True(t, changed)

		assert.True(t, r.CodesVisibleTo(r.RenterID))
		assert.False(t, r.CodesVisibleTo(r.OwnerID))
		assert.False(t, r.CodesVisibleTo(uuid.New()))
	})

	t.Run("chat closes with the rental", func(t *testing.T) {
		r := newPaidRental(t)
		assert.True(t, r.ChatEnabled(r.RenterID))
		assert.True(t, r.ChatEnabled(r.OwnerID))

		_, _, err := r.Cancel(rental.PartyRenter, "", testNow)
		require.NoError(t, err)
		assert.False(t, r.ChatEnabled(r.RenterID))
	})
}

func finalizedRental(t *testing.T) *rental.Rental {
	t.Helper()
	r := newPaidRental(t)
	require.NoError(t, r.ConfirmDeliveryOTP(r.HandoverCode, "", testNow))
	require.NoError(t, r.ConfirmReturnOTP(r.ReturnCode, "", testNow))
	_, err := r.Finalize(testNow)
	require.NoError(t, err)
	r.TakeEvents()
	return r
}
