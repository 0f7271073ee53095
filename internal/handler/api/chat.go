package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reqdto "lendhub/internal/handler/dto/request"
	resdto "lendhub/internal/handler/dto/response"
	"lendhub/internal/handler/httperr"
	"lendhub/internal/handler/middleware"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"
)

type ChatHandler struct {
	cmds commands.ChatCommands
	q    queries.ChatQueries
}

func NewChatHandler(cmds commands.ChatCommands, q queries.ChatQueries) *ChatHandler {
	return &ChatHandler{cmds: cmds, q: q}
}

// @Summary Send message
// @Description Post a message to the rental chat; content is screened before storing
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.SendMessageRequest true "Message"
// @Success 201 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /rentals/{id}/messages [post]
func (h *ChatHandler) Send(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	var req reqdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	m, err := h.cmds.SendMessage(c.Request.Context(), id, userID, req.Body)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromMessage(m))
}

// @Summary List messages
// @Description Recent chat history of a rental, oldest first
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.MessageListResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/messages [get]
func (h *ChatHandler) List(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	msgs, err := h.q.Messages(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.MessageListResponse{Messages: msgs})
}

// @Summary Mark chat read
// @Description Move the viewer's read marker to now
// @Tags chat
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 204 "No Content"
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/messages/read [post]
func (h *ChatHandler) MarkRead(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	if err := h.cmds.MarkRead(c.Request.Context(), id, userID); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Unread count
// @Description Unread messages of one rental for the viewer
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.UnreadCountResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /rentals/{id}/messages/unread [get]
func (h *ChatHandler) UnreadCount(c *gin.Context) {
	id, userID, ok := rentalScope(c)
	if !ok {
		return
	}
	n, err := h.q.UnreadCount(c.Request.Context(), id, userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.UnreadCountResponse{Unread: n})
}

// @Summary Unread total
// @Description Unread messages across all of the viewer's rentals
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.UnreadCountResponse
// @Failure 401 {object} map[string]string
// @Router /messages/unread [get]
func (h *ChatHandler) UnreadTotal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	n, err := h.q.UnreadTotal(c.Request.Context(), userID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.UnreadCountResponse{Unread: n})
}
