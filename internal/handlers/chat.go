package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samuel04-png/aether-api/internal/dto"
	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/services"
)

// ChatHandler coordinates channel and message HTTP handlers.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ListChannels returns the channels visible to the user.
func (h *ChatHandler) ListChannels(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channels, err := h.chatService.ListChannels(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch channels")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"channels": dto.ToChannelDTOs(channels),
	})
}

// CreateChannel creates a channel with the user as its first member.
func (h *ChatHandler) CreateChannel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateChannelRequest struct {
		Name string `json:"name" binding:"required,max=100"`
		Type string `json:"type"`
	}

	var req CreateChannelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	channel, err := h.chatService.CreateChannel(c.Request.Context(), userID, services.CreateChannelInput{
		Name: req.Name,
		Type: models.ChannelType(req.Type),
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChannelDTO(*channel))
}

// JoinChannel adds the user to a public channel.
func (h *ChatHandler) JoinChannel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	if err := h.chatService.JoinChannel(c.Request.Context(), channelID, userID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Joined channel successfully",
	})
}

// LeaveChannel removes the user from a channel.
func (h *ChatHandler) LeaveChannel(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	if err := h.chatService.LeaveChannel(c.Request.Context(), channelID, userID); err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Left channel successfully",
	})
}

// ListMessages returns a channel's messages in send order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	messages, err := h.chatService.ListMessages(channelID, userID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": dto.ToChatMessageDTOs(messages),
	})
}

// SendMessage appends a message to a channel.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	channelID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid channel ID")
		return
	}

	type SendMessageRequest struct {
		Body string `json:"body" binding:"required"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), channelID, userID, req.Body)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoScopingID):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrChannelNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotChannelMember):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrChannelNameRequired),
		errors.Is(err, services.ErrInvalidChannelType),
		errors.Is(err, services.ErrMessageBodyRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
