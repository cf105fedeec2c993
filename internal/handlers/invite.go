package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Samuel04-png/aether-api/internal/dto"
	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/services"
	"github.com/Samuel04-png/aether-api/internal/views"
)

// InviteHandler coordinates project invite HTTP handlers.
type InviteHandler struct {
	inviteService *services.InviteService
}

// NewInviteHandler creates a new InviteHandler.
func NewInviteHandler(inviteService *services.InviteService) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
	}
}

// ListInvites returns the user's invites. With ?pending=true only pending
// invites addressed to the user come back, newest first.
func (h *InviteHandler) ListInvites(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	invites, err := h.inviteService.ListInvites(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch invites")
		return
	}

	inviteDTOs := dto.ToInviteDTOs(invites)
	if c.Query("pending") == "true" {
		inviteDTOs = views.RankPendingInvites(inviteDTOs)
	}

	c.JSON(http.StatusOK, gin.H{
		"invites": inviteDTOs,
	})
}

// SendInvite invites a registered user to one of the sender's projects.
func (h *InviteHandler) SendInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type SendInviteRequest struct {
		ProjectID uint64 `json:"project_id" binding:"required"`
		InviteeID uint64 `json:"invitee_id" binding:"required"`
		Role      string `json:"role" binding:"max=50"`
		Message   string `json:"message"`
	}

	var req SendInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invite, err := h.inviteService.SendInvite(c.Request.Context(), userID, services.SendInviteInput{
		ProjectID: req.ProjectID,
		InviteeID: req.InviteeID,
		Role:      req.Role,
		Message:   req.Message,
	})
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteDTO(*invite))
}

// AcceptInvite resolves a pending invite as accepted; the invitee joins the
// project's workspace.
func (h *InviteHandler) AcceptInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invite ID")
		return
	}

	if err := h.inviteService.AcceptInvite(c.Request.Context(), inviteID, userID); err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite accepted",
	})
}

// DeclineInvite resolves a pending invite as declined.
func (h *InviteHandler) DeclineInvite(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	inviteID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid invite ID")
		return
	}

	if err := h.inviteService.DeclineInvite(c.Request.Context(), inviteID, userID); err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invite declined",
	})
}

func respondInviteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoScopingID):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrInviteNotFound),
		errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotInvitee),
		errors.Is(err, services.ErrNotProjectOwner):
		// 404 instead of 403 to avoid leaking invite existence
		apierrors.NotFound(c, "invite not found")
	case errors.Is(err, services.ErrInviteNotPending),
		errors.Is(err, services.ErrDuplicateInvite):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInviteSelf),
		errors.Is(err, services.ErrUnknownInvitee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
