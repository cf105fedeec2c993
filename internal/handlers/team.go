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

// TeamHandler coordinates team-member HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// ListMembers returns the user's team.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	members, err := h.teamService.ListMembers(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch team members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": dto.ToTeamMemberDTOs(members),
	})
}

// AddMember adds a member to the user's workspace team.
func (h *TeamHandler) AddMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type AddMemberRequest struct {
		Name      string `json:"name" binding:"required,max=100"`
		Role      string `json:"role" binding:"max=50"`
		AvatarURL string `json:"avatar_url" binding:"max=512"`
		Email     string `json:"email" binding:"omitempty,email"`
		Status    string `json:"status"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.teamService.AddMember(c.Request.Context(), userID, services.AddMemberInput{
		Name:      req.Name,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
		Status:    models.MembershipStatus(req.Status),
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamMemberDTO(*member))
}

// UpdateMember updates a team member's fields.
func (h *TeamHandler) UpdateMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	type UpdateMemberRequest struct {
		Name      *string `json:"name"`
		Role      *string `json:"role"`
		AvatarURL *string `json:"avatar_url"`
		Email     *string `json:"email"`
		Status    *string `json:"status"`
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateMemberInput{
		Name:      req.Name,
		Role:      req.Role,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
	}
	if req.Status != nil {
		status := models.MembershipStatus(*req.Status)
		input.Status = &status
	}

	member, err := h.teamService.UpdateMember(c.Request.Context(), memberID, userID, input)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamMemberDTO(*member))
}

// RemoveMember removes a member from the workspace and unassigns their open
// tasks.
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid member ID")
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), memberID, userID); err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoScopingID):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotMemberOwner):
		// 404 instead of 403 to avoid leaking member existence
		apierrors.NotFound(c, "team member not found")
	case errors.Is(err, services.ErrMemberNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
