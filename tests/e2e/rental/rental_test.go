//go:build e2e

package rental_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lendhub/internal/domain/user"
	"lendhub/internal/handler/dto/request"
	"lendhub/internal/handler/dto/response"
	"lendhub/tests/common/authtest"
	"lendhub/tests/common/dbtest"
	"lendhub/tests/common/httptest"
	"lendhub/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	rentalsURL   = "/api/rentals"
	rentalURL    = "/api/rentals/%s"
	payURL       = "/api/rentals/%s/pay"
	cancelURL    = "/api/rentals/%s/cancel"
	proposeURL   = "/api/rentals/%s/coordination/propose"
	acceptURL    = "/api/rentals/%s/coordination/accept"
	confirmURL   = "/api/rentals/%s/coordination/confirm"
	deliveryURL  = "/api/rentals/%s/delivery/otp"
	returnOTPURL = "/api/rentals/%s/return/otp"
	finalizeURL  = "/api/rentals/%s/finalize"
	timelineURL  = "/api/rentals/%s/timeline"
	messagesURL  = "/api/rentals/%s/messages"
)

type RentalSuite struct {
	e2e.SharedSuite
}

func (s *RentalSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestRentalSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RentalSuite))
}

type participants struct {
	ownerID     uuid.UUID
	renterID    uuid.UUID
	articleID   uuid.UUID
	ownerToken  string
	renterToken string
}

func (s *RentalSuite) setupParticipants(t *testing.T) participants {
	t.Helper()

	ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleUser))
	renterID := dbtest.CreateTestUser(t, s.DB, "renter@example.com", string(user.RoleUser))
	articleID := dbtest.CreateTestArticle(t, s.DB, ownerID, "City bike", 3000, 12000)

	jwtHelper := authtest.NewJWTHelper(s.Config.JWT)
	return participants{
		ownerID:     ownerID,
		renterID:    renterID,
		articleID:   articleID,
		ownerToken:  jwtHelper.GenerateToken(t, ownerID, user.RoleUser),
		renterToken: jwtHelper.GenerateToken(t, renterID, user.RoleUser),
	}
}

func (s *RentalSuite) createRental(t *testing.T, p participants, start, end time.Time) response.RentalResponse {
	t.Helper()

	body := request.CreateRentalRequest{
		ArticleID: p.articleID,
		StartsAt:  start,
		EndsAt:    end,
	}
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, body, p.renterToken)

	var created response.RentalResponse
	httptest.AssertSuccessResponse(t, w, http.StatusCreated, &created)
	return created
}

func (s *RentalSuite) TestRentalLifecycle() {
	s.Run("full OTP handover cycle", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))

		require.Equal(t, "pending_payment", created.State)
		require.Equal(t, 2, created.Units)
		require.Equal(t, int64(6000), created.SubtotalCents)
		require.Equal(t, int64(12000), created.DepositCents)
		require.Empty(t, created.HandoverCode, "codes must not exist before payment")

		// Payment mints the OTP pair, renter side only.
		var paid response.RentalResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)
		require.Equal(t, "paid", paid.State)
		require.Len(t, paid.HandoverCode, 6)
		require.Len(t, paid.ReturnCode, 6)

		var ownerView response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(rentalURL, created.ID), nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &ownerView)
		require.Empty(t, ownerView.HandoverCode, "owner must not see the renter's codes")
		require.Empty(t, ownerView.ReturnCode)

		// Coordination: owner proposes both legs, renter accepts one of
		// each, owner confirms.
		deliveryWindows := []string{"2026-05-02 morning", "2026-05-02 evening"}
		returnWindows := []string{"2026-05-04 morning", "2026-05-04 evening"}
		var proposed response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(proposeURL, created.ID),
			request.ProposeCoordinationRequest{
				Mode:            "meetup",
				Address:         "Main square",
				DeliveryWindows: deliveryWindows,
				ReturnWindows:   returnWindows,
			}, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &proposed)
		require.NotNil(t, proposed.Coordination)
		require.Equal(t, deliveryWindows, proposed.Coordination.DeliveryWindows)
		require.Equal(t, returnWindows, proposed.Coordination.ReturnWindows)
		require.Equal(t, "Main square", proposed.Coordination.Address, "address is visible once paid")

		var accepted response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID),
			request.AcceptWindowRequest{Kind: "delivery", Window: deliveryWindows[0]}, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
		require.Equal(t, deliveryWindows[0], accepted.Coordination.ChosenDelivery)

		// Confirming with only the delivery leg chosen must be refused.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil, p.ownerToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(acceptURL, created.ID),
			request.AcceptWindowRequest{Kind: "return", Window: returnWindows[1]}, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &accepted)
		require.Equal(t, returnWindows[1], accepted.Coordination.ChosenReturn)

		var confirmed response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(confirmURL, created.ID), nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &confirmed)
		require.True(t, confirmed.Coordination.Confirmed)

		// Handover: the owner enters the code the renter shows them.
		var inUse response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(deliveryURL, created.ID),
			request.ConfirmOTPRequest{Code: paid.HandoverCode, Checklist: "scratch on frame"}, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &inUse)
		require.Equal(t, "in_use", inUse.State)
		require.True(t, inUse.Delivered)

		var returned response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(returnOTPURL, created.ID),
			request.ConfirmOTPRequest{Code: paid.ReturnCode}, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &returned)
		require.Equal(t, "returned", returned.State)
		require.True(t, returned.Returned)

		var finalized response.RentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(finalizeURL, created.ID), nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &finalized)
		require.Equal(t, "finalized", finalized.State)
		require.True(t, finalized.DepositReleased)

		var timeline response.TimelineResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(timelineURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &timeline)
		var types []string
		for _, ev := range timeline.Events {
			types = append(types, ev.Type)
		}
		require.Subset(t, types, []string{"created", "paid", "delivery_confirmed", "returned", "finalized", "deposit_released"})
	})

	s.Run("overlapping booking is rejected", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		s.createRental(t, p, start, start.Add(48*time.Hour))

		other := dbtest.CreateTestUser(t, s.DB, "other-renter@example.com", string(user.RoleUser))
		otherToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, other, user.RoleUser)

		body := request.CreateRentalRequest{
			ArticleID: p.articleID,
			StartsAt:  start.Add(24 * time.Hour),
			EndsAt:    start.Add(96 * time.Hour),
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, rentalsURL, body, otherToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("wrong handover code is rejected", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		var paid response.RentalResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &paid)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(deliveryURL, created.ID),
			request.ConfirmOTPRequest{Code: "000000"}, p.ownerToken)
		if paid.HandoverCode == "000000" {
			t.Skip("generated code collided with the probe value")
		}
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "code")
	})

	s.Run("owner cancellation requires a note", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID),
			request.CancelRentalRequest{}, p.ownerToken)
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "note")

		var cancelled response.CancelRentalResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.ID),
			request.CancelRentalRequest{Note: "bike got damaged"}, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &cancelled)
		require.Equal(t, "cancelled", cancelled.Rental.State)
		require.Equal(t, int64(18000), cancelled.RefundCents, "paid cancellations refund subtotal plus deposit")
	})

	s.Run("stale pending rental expires lazily", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))

		// Age the rental past the payment window.
		_, err := s.DB.Exec(t.Context(),
			"UPDATE rentals SET created_at = created_at - interval '1 hour' WHERE id = $1", created.ID)
		require.NoError(t, err)

		var view response.RentalResponse
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(rentalURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &view)
		require.Equal(t, "expired", view.State)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "expired")
	})
}

func (s *RentalSuite) TestChatAndNotifications() {
	s.Run("chat opens after payment and notifies the counterpart", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		var sent response.MessageResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(messagesURL, created.ID),
			request.SendMessageRequest{Body: "See you at the square"}, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &sent)
		require.Equal(t, "See you at the square", sent.Body)

		var list response.MessageListResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, created.ID), nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &list)
		require.Len(t, list.Messages, 1)
		require.False(t, list.Messages[0].Mine)

		var unread response.UnreadCountResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, created.ID)+"/unread", nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &unread)
		require.Equal(t, int64(1), unread.Unread)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(messagesURL, created.ID)+"/read", nil, p.ownerToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, created.ID)+"/unread", nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &unread)
		require.Equal(t, int64(0), unread.Unread)

		// A second message straight after the first trips the cooldown.
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(messagesURL, created.ID),
			request.SendMessageRequest{Body: "one more thing"}, p.renterToken)
		httptest.AssertErrorResponse(t, w, http.StatusTooManyRequests, "")

		// The payment produced an idempotent notification for the owner.
		var notifications response.NotificationListResponse
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/notifications", nil, p.ownerToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &notifications)
		var kinds []string
		for _, n := range notifications.Notifications {
			kinds = append(kinds, n.Kind)
		}
		require.Contains(t, kinds, "rental_paid")
	})

	s.Run("stranger cannot read the thread", func() {
		t := s.T()
		p := s.setupParticipants(t)

		start := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
		created := s.createRental(t, p, start, start.Add(48*time.Hour))
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(payURL, created.ID), nil, p.renterToken)
		httptest.AssertSuccessResponse(t, w, http.StatusOK, nil)

		stranger := dbtest.CreateTestUser(t, s.DB, "stranger@example.com", string(user.RoleUser))
		strangerToken := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, stranger, user.RoleUser)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(messagesURL, created.ID), nil, strangerToken)
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}
