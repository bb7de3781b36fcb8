package handler

import (
	"net/http"

	"messagebox/internal/services"
	"messagebox/internal/transport/httpdto"
	mb_errors "messagebox/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MessageHandler handles message HTTP endpoints. Every route is mounted
// behind the auth middleware, so a user id is always in the context.
type MessageHandler struct {
	messages *services.MessageService
}

// NewMessageHandler creates a message handler.
func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// List handles GET /api/message/messages/.
func (h *MessageHandler) List(c *gin.Context) {
	ownerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	query := services.ListQuery{
		Search:   c.Query("search"),
		FromDate: c.Query("fd"),
		ToDate:   c.Query("td"),
	}
	if raw, present := c.GetQuery("filter"); present {
		query.Filter = &raw
	}

	msgs, err := h.messages.List(c.Request.Context(), ownerID, query)
	if err != nil {
		writeError(c, err)
		return
	}

	summaries := make([]httpdto.MessageSummary, 0, len(msgs))
	for _, m := range msgs {
		summaries = append(summaries, httpdto.NewMessageSummary(m))
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(summaries))
}

// Create handles POST /api/message/messages/.
func (h *MessageHandler) Create(c *gin.Context) {
	ownerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	var req httpdto.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("content is required", "INVALID_INPUT"))
		return
	}

	m, err := h.messages.Create(c.Request.Context(), ownerID, services.CreateMessageInput{
		ContactEmail: req.Email,
		SenderName:   req.Name,
		Title:        req.Title,
		Content:      req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.NewMessageDetail(m)))
}

// Get handles GET /api/message/messages/:id/.
func (h *MessageHandler) Get(c *gin.Context) {
	ownerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	id, err := parseMessageID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	m, err := h.messages.Get(c.Request.Context(), id, ownerID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewMessageDetail(m)))
}

// Update handles PATCH /api/message/messages/:id/.
func (h *MessageHandler) Update(c *gin.Context) {
	ownerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	id, err := parseMessageID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	var req httpdto.UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	m, err := h.messages.Update(c.Request.Context(), id, ownerID, services.UpdateMessageInput{
		ContactEmail: req.Email,
		SenderName:   req.Name,
		Title:        req.Title,
		Content:      req.Content,
		IsRecent:     req.IsRecent,
		IsRead:       req.IsRead,
		IsAnswered:   req.IsAnswered,
		IsBanned:     req.IsBanned,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.NewMessageDetail(m)))
}

// Delete handles DELETE /api/message/messages/:id/.
func (h *MessageHandler) Delete(c *gin.Context) {
	ownerID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, httpdto.NewErrorResponse("forbidden", "FORBIDDEN"))
		return
	}

	id, err := parseMessageID(c)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.messages.Delete(c.Request.Context(), id, ownerID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseMessageID treats a malformed id the same as a missing record, so
// callers cannot distinguish them.
func parseMessageID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, mb_errors.ErrNotFound
	}
	return id, nil
}
