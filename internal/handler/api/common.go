package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lendhub/internal/domain/rental"
	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/httperr"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/usecase/queries"
)

// rentalScope extracts the rental id from the path and the actor from the
// token, aborting the request on failure.
func rentalScope(c *gin.Context) (rentalID, userID uuid.UUID, ok bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	userID, found := middleware.GetUserID(c)
	if !found {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, userID, true
}

func roleOf(c *gin.Context) string {
	if role, ok := middleware.GetUserRole(c); ok {
		return role.String()
	}
	return queries.RoleUser
}

func intQuery(c *gin.Context, key string) int {
	if v := c.Query(key); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			return iv
		}
	}
	return 0
}

func (h *RentalHandler) simpleTransition(c *gin.Context, fn func(ctx context.Context, rentalID, actorID uuid.UUID) (*rental.Rental, error)) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	r, err := fn(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}

func (h *RentalHandler) otpTransition(c *gin.Context, fn func(ctx context.Context, rentalID, actorID uuid.UUID, code, checklist string) (*rental.Rental, error)) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.ConfirmOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	r, err := fn(c.Request.Context(), id, userID, req.Code, req.Checklist)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRental(r, userID, roleOf(c)))
}
