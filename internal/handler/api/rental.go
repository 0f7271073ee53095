package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/httperr"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"
)

type RentalHandler struct {
	cmds commands.RentalCommands
	q    queries.RentalQueries
}

func NewRentalHandler(cmds commands.RentalCommands, q queries.RentalQueries) *RentalHandler {
	return &RentalHandler{cmds: cmds, q: q}
}

// @Summary Create rental
// @Description Book an article for a half-open interval, starting in pending payment
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRentalRequest true "Create rental request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} map[string]string
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals [post]
func (h *RentalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRental(r, userID, roleOf(c)))
}

// @Summary Get rental
// @Description Get a rental by ID; OTP codes and addresses follow the viewer's visibility
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	view, err := h.q.Get(c.Request.Context(), id, userID, roleOf(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Rental inbox
// @Description List own rentals as renter or owner, bucketed open/closed
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param role query string false "renter or owner (default renter)"
// @Param bucket query string false "all, open or closed (default all)"
// @Param limit query int false "Max items (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} resdto.InboxResponse
// @Failure 401 {object} map[string]string
// @Router /rentals [get]
func (h *RentalHandler) Inbox(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	req := queries.InboxRequest{
		Role:   c.Query("role"),
		Bucket: c.Query("bucket"),
		Limit:  intQuery(c, "limit"),
		Offset: intQuery(c, "offset"),
	}
	page, err := h.q.Inbox(c.Request.Context(), userID, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.InboxResponse{Items: page.Items, Total: page.Total})
}

// @Summary Pay rental
// @Description Simulated payment; moves the rental to paid and mints the OTP codes
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/pay [post]
func (h *RentalHandler) Pay(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	r, err := h.cmds.Pay(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}

// @Summary Cancel rental
// @Description Cancel a rental; the refund depends on who cancels and the current state
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.CancelRentalRequest false "Cancel request"
// @Success 200 {object} resdto.CancelRentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/cancel [post]
func (h *RentalHandler) Cancel(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.CancelRentalRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	role, _ := middleware.GetUserRole(c)
	result, err := h.cmds.Cancel(c.Request.Context(), id, userID, role, req.Note)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.CancelRentalResponse{
		Rental:      resdto.FromRental(result.Rental, userID, roleOf(c)),
		RefundCents: result.RefundCents,
	})
}

// @Summary Confirm delivery
// @Description Owner confirms the handover without an OTP code
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/delivery/confirm [post]
func (h *RentalHandler) ConfirmDelivery(c *gin.Context) {
	h.simpleTransition(c, h.cmds.ConfirmDelivery)
}

// @Summary Confirm delivery with OTP
// @Description Owner enters the renter's handover code; jumps straight to in use
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ConfirmOTPRequest true "OTP request"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/delivery/otp [post]
func (h *RentalHandler) ConfirmDeliveryOTP(c *gin.Context) {
	h.otpTransition(c, h.cmds.ConfirmDeliveryOTP)
}

// @Summary Mark in use
// @Description Renter acknowledges having the item
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/in-use [post]
func (h *RentalHandler) MarkInUse(c *gin.Context) {
	h.simpleTransition(c, h.cmds.MarkInUse)
}

// @Summary Mark returned
// @Description Renter declares the item returned
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/returned [post]
func (h *RentalHandler) MarkReturned(c *gin.Context) {
	h.simpleTransition(c, h.cmds.MarkReturned)
}

// @Summary Confirm return with OTP
// @Description Owner enters the renter's return code to acknowledge the return
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ConfirmOTPRequest true "OTP request"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/return/otp [post]
func (h *RentalHandler) ConfirmReturnOTP(c *gin.Context) {
	h.otpTransition(c, h.cmds.ConfirmReturnOTP)
}

// @Summary Finalize rental
// @Description Owner closes the rental; the deposit is released
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /rentals/{id}/finalize [post]
func (h *RentalHandler) Finalize(c *gin.Context) {
	h.simpleTransition(c, h.cmds.Finalize)
}

// @Summary Expire rental
// @Description Apply the lazy payment expiry if the rental is overdue for payment
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.ExpireRentalResponse
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/expire [post]
func (h *RentalHandler) Expire(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	expired, err := h.cmds.ExpireIfDue(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.ExpireRentalResponse{Expired: expired})
}

// @Summary Report incident
// @Description Report a problem with the rental; freezes the deposit
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ReportIncidentRequest false "Incident report"
// @Success 201 {object} resdto.IncidentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/incident [post]
func (h *RentalHandler) ReportIncident(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.ReportIncidentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	inc, err := h.cmds.ReportIncident(c.Request.Context(), id, userID, req.Description)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromIncident(inc))
}

// @Summary Resolve incident
// @Description Owner or admin decides the deposit split for a reported incident
// @Tags incidents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ResolveIncidentRequest true "Resolution"
// @Success 200 {object} resdto.IncidentResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/incident/resolve [post]
func (h *RentalHandler) ResolveIncident(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.ResolveIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)
	inc, err := h.cmds.ResolveIncident(c.Request.Context(), id, userID, role, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromIncident(inc))
}

// @Summary Get incident
// @Description Get the incident reported on a rental
// @Tags incidents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.IncidentResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/incident [get]
func (h *RentalHandler) GetIncident(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	view, err := h.q.Incident(c.Request.Context(), id, userID, roleOf(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Rental timeline
// @Description List the audit events of a rental in order
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.TimelineResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/timeline [get]
func (h *RentalHandler) Timeline(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	entries, err := h.q.Timeline(c.Request.Context(), id, userID, roleOf(c))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.TimelineResponse{Events: entries})
}

// @Summary Article occupancy
// @Description Booked slots of an article, without party identities
// @Tags articles
// @Produce json
// @Param id path string true "Article ID"
// @Success 200 {object} resdto.OccupancyResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /articles/{id}/occupancy [get]
func (h *RentalHandler) Occupancy(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	slots, err := h.q.Occupancy(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.OccupancyResponse{Slots: slots})
}

// @Summary List delivery points
// @Description Reference list of the known delivery points
// @Tags delivery-points
// @Produce json
// @Success 200 {object} resdto.DeliveryPointsResponse
// @Router /delivery-points [get]
func (h *RentalHandler) DeliveryPoints(c *gin.Context) {
	points, err := h.q.DeliveryPoints(c.Request.Context())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.DeliveryPointsResponse{Points: points})
}
