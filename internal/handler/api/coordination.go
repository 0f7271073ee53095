package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/httperr"
	"lendhub/internal/usecase/commands"
)

type CoordinationHandler struct {
	cmds commands.CoordinationCommands
}

func NewCoordinationHandler(cmds commands.CoordinationCommands) *CoordinationHandler {
	return &CoordinationHandler{cmds: cmds}
}

// @Summary Propose coordination
// @Description Owner proposes 2-3 delivery and 2-3 return windows with a meetup address or a delivery point
// @Tags coordination
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.ProposeCoordinationRequest true "Proposal"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/coordination/propose [post]
func (h *CoordinationHandler) Propose(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.ProposeCoordinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.Propose(c.Request.Context(), id, userID, req.ToCommand())
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}

// @Summary Accept window
// @Description Renter picks one of the proposed windows for the delivery or the return leg
// @Tags coordination
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.AcceptWindowRequest true "Chosen window"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/coordination/accept [post]
func (h *CoordinationHandler) AcceptWindow(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.AcceptWindowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := h.cmds.AcceptWindow(c.Request.Context(), id, userID, req.Kind, req.Window)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}

// @Summary Confirm coordination
// @Description Owner locks in the delivery and return windows the renter chose
// @Tags coordination
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/coordination/confirm [post]
func (h *CoordinationHandler) Confirm(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	r, err := h.cmds.Confirm(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}
