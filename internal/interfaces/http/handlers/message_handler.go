package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"garagesale.backend/internal/domain/entities"
	domainerrors "garagesale.backend/internal/domain/errors"
	"garagesale.backend/internal/interfaces/http/middleware"
	"garagesale.backend/internal/interfaces/http/response"
	"garagesale.backend/internal/usecases"
)

// MessageHandler handles chat endpoints
type MessageHandler struct {
	messageUsecase *usecases.MessageUsecase
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageUsecase *usecases.MessageUsecase) *MessageHandler {
	return &MessageHandler{messageUsecase: messageUsecase}
}

// Send delivers a message to another user
// POST /api/v1/messages
func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	message, err := h.messageUsecase.Send(c.Request.Context(), userID, &input)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"message": message})
}

// Conversations lists the caller's conversations, newest first
// GET /api/v1/messages/conversations
func (h *MessageHandler) Conversations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	conversations, err := h.messageUsecase.Conversations(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"conversations": conversations})
}

// Thread returns the exchange with one peer and marks it read
// GET /api/v1/messages/conversation/:userId
func (h *MessageHandler) Thread(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	peerID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid user ID"))
		return
	}

	messages, err := h.messageUsecase.Thread(c.Request.Context(), userID, peerID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// ItemThread returns the caller's messages about one item
// GET /api/v1/messages/with-item/:itemId
func (h *MessageHandler) ItemThread(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid item ID"))
		return
	}

	messages, err := h.messageUsecase.ItemThread(c.Request.Context(), userID, itemID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// UnreadCount returns the caller's unread message count
// GET /api/v1/messages/unread-count
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	count, err := h.messageUsecase.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": count})
}

// MarkRead marks a single message as read
// PUT /api/v1/messages/:id/read
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid message ID"))
		return
	}

	if err := h.messageUsecase.MarkRead(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Marked as read"})
}

// Search finds the caller's messages matching a query
// GET /api/v1/messages/search?query=
func (h *MessageHandler) Search(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	messages, err := h.messageUsecase.Search(c.Request.Context(), userID, c.Query("query"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"messages": messages})
}

// Delete removes the caller's own message
// DELETE /api/v1/messages/:id
func (h *MessageHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid message ID"))
		return
	}

	if err := h.messageUsecase.Delete(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Message deleted"})
}
