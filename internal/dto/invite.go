package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// InviteDTO represents a project invite in API responses
type InviteDTO struct {
	ID          uint64              `json:"id"`
	ProjectID   uint64              `json:"project_id"`
	ProjectName string              `json:"project_name"`
	InviterID   uint64              `json:"inviter_id"`
	InviterName string              `json:"inviter_name"`
	InviteeID   uint64              `json:"invitee_id"`
	Role        string              `json:"role"`
	Status      models.InviteStatus `json:"status"`
	Message     string              `json:"message,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ToInviteDTO converts a ProjectInvite model to InviteDTO
func ToInviteDTO(invite models.ProjectInvite) InviteDTO {
	dto := InviteDTO{
		ID:        invite.ID,
		ProjectID: invite.ProjectID,
		InviterID: invite.InviterID,
		InviteeID: invite.InviteeID,
		Role:      invite.Role,
		Status:    invite.Status,
		Message:   invite.Message,
		CreatedAt: invite.CreatedAt,
	}
	if dto.Status == "" {
		dto.Status = models.InviteStatusPending
	}
	dto.ProjectName = invite.Project.Name
	dto.InviterName = invite.Inviter.DisplayName
	if dto.InviterName == "" {
		dto.InviterName = UnknownUserName
	}
	return dto
}

// ToInviteDTOs maps a slice of invites.
func ToInviteDTOs(invites []models.ProjectInvite) []InviteDTO {
	out := make([]InviteDTO, len(invites))
	for i, invite := range invites {
		out[i] = ToInviteDTO(invite)
	}
	return out
}
