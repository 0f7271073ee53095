//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"lendhub/internal/domain/rental"
	"lendhub/internal/domain/user"
	"lendhub/internal/handler/api"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"
	"lendhub/tests/common/httptest"
	commandsmock "lendhub/tests/mock/commands"
)

type CoordinationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCoordinationCommands
	handler      *api.CoordinationHandler

	actorID uuid.UUID
}

func (s *CoordinationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCoordinationCommands(s.mockCtrl)
	s.handler = api.NewCoordinationHandler(s.mockCommands)

	s.actorID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.actorID)
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	s.router.POST("/rentals/:id/coordination/propose", authMiddleware, s.handler.Propose)
	s.router.POST("/rentals/:id/coordination/accept", authMiddleware, s.handler.AcceptWindow)
	s.router.POST("/rentals/:id/coordination/confirm", authMiddleware, s.handler.Confirm)
}

func (s *CoordinationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCoordinationHandlerSuite(t *testing.T) {
	suite.Run(t, new(CoordinationHandlerTestSuite))
}

// proposedRental builds a paid rental owned by the suite actor with a
// live proposal on it.
func (s *CoordinationHandlerTestSuite) proposedRental(rentalID uuid.UUID, delivery, ret []string) *rental.Rental {
	r := buildRental(uuid.New(), s.actorID)
	r.ID = rentalID
	_, err := r.Pay(testNow)
	s.Require().NoError(err)
	s.Require().NoError(r.ProposeCoordination(rental.ModeMeetup, "Main square", nil, delivery, ret, testNow.Add(time.Minute)))
	return r
}

func (s *CoordinationHandlerTestSuite) TestPropose() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String() + "/coordination/propose"

	reqBody := map[string]any{
		"mode":             "meetup",
		"address":          "Main square",
		"delivery_windows": []string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
		"return_windows":   []string{"Wed 18:00-19:00", "Thu 09:00-10:00"},
	}

	s.Run("success: returns the proposal on the rental view", func() {
		r := s.proposedRental(rentalID,
			[]string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			[]string{"Wed 18:00-19:00", "Thu 09:00-10:00"})

		s.mockCommands.EXPECT().Propose(gomock.Any(), rentalID, s.actorID, gomock.Any()).
			Return(r, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body queries.RentalView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Coordination)
		s.Len(body.Coordination.DeliveryWindows, 2)
		s.Len(body.Coordination.ReturnWindows, 2)
		s.Equal("Main square", body.Coordination.Address)
	})

	s.Run("error: 403 when the renter proposes", func() {
		s.mockCommands.EXPECT().Propose(gomock.Any(), rentalID, s.actorID, gomock.Any()).
			Return(nil, errs.Category(errs.New("only the owner may perform this action"), errs.ErrForbidden)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	})

	s.Run("error: 400 on missing window sets", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"mode": "meetup", "address": "Main square"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 when only delivery windows are sent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{
				"mode":             "meetup",
				"address":          "Main square",
				"delivery_windows": []string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *CoordinationHandlerTestSuite) TestAcceptWindow() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String() + "/coordination/accept"

	s.Run("success: the chosen delivery window shows up", func() {
		r := s.proposedRental(rentalID,
			[]string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			[]string{"Wed 18:00-19:00", "Thu 09:00-10:00"})
		s.Require().NoError(r.AcceptWindow(rental.WindowDelivery, "Sat 10:00-12:00", testNow.Add(2*time.Minute)))

		s.mockCommands.EXPECT().AcceptWindow(gomock.Any(), rentalID, s.actorID, "delivery", "Sat 10:00-12:00").
			Return(r, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"kind": "delivery", "window": "Sat 10:00-12:00"}, "bearer-token")

		var body queries.RentalView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Coordination)
		s.Equal("Sat 10:00-12:00", body.Coordination.ChosenDelivery)
		s.Empty(body.Coordination.ChosenReturn)
	})

	s.Run("success: the chosen return window shows up", func() {
		r := s.proposedRental(rentalID,
			[]string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			[]string{"Wed 18:00-19:00", "Thu 09:00-10:00"})
		s.Require().NoError(r.AcceptWindow(rental.WindowReturn, "Thu 09:00-10:00", testNow.Add(2*time.Minute)))

		s.mockCommands.EXPECT().AcceptWindow(gomock.Any(), rentalID, s.actorID, "return", "Thu 09:00-10:00").
			Return(r, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"kind": "return", "window": "Thu 09:00-10:00"}, "bearer-token")

		var body queries.RentalView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Coordination)
		s.Equal("Thu 09:00-10:00", body.Coordination.ChosenReturn)
	})

	s.Run("error: 400 when the window was never proposed", func() {
		s.mockCommands.EXPECT().AcceptWindow(gomock.Any(), rentalID, s.actorID, "delivery", "Mon 09:00").
			Return(nil, errs.ErrWindowNotProposed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"kind": "delivery", "window": "Mon 09:00"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on missing kind", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"window": "Sat 10:00-12:00"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *CoordinationHandlerTestSuite) TestConfirm() {
	rentalID := uuid.New()
	url := "/rentals/" + rentalID.String() + "/coordination/confirm"

	s.Run("success: confirmation is reflected", func() {
		r := s.proposedRental(rentalID,
			[]string{"Sat 10:00-12:00", "Sun 16:00-18:00"},
			[]string{"Wed 18:00-19:00", "Thu 09:00-10:00"})
		s.Require().NoError(r.AcceptWindow(rental.WindowDelivery, "Sat 10:00-12:00", testNow.Add(2*time.Minute)))
		s.Require().NoError(r.AcceptWindow(rental.WindowReturn, "Wed 18:00-19:00", testNow.Add(2*time.Minute)))
		s.Require().NoError(r.ConfirmCoordination(testNow.Add(3*time.Minute)))

		s.mockCommands.EXPECT().Confirm(gomock.Any(), rentalID, s.actorID).
			Return(r, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body queries.RentalView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().NotNil(body.Coordination)
		s.True(body.Coordination.Confirmed)
	})

	s.Run("error: 400 before both windows were accepted", func() {
		s.mockCommands.EXPECT().Confirm(gomock.Any(), rentalID, s.actorID).
			Return(nil, errs.ErrWindowNotProposed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
