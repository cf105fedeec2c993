package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// ProjectInvite lives in the shared namespace. Invites are never deleted;
// they only transition pending -> accepted/declined.
type ProjectInvite struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	ProjectID uint64       `gorm:"not null;index" json:"project_id"`
	InviterID uint64       `gorm:"not null" json:"inviter_id"`
	InviteeID uint64       `gorm:"not null;index" json:"invitee_id"`
	Role      string       `gorm:"type:varchar(50);not null" json:"role"`
	Status    InviteStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Message   string       `gorm:"type:text" json:"message"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Inviter User    `gorm:"foreignKey:InviterID" json:"inviter,omitempty"`
	Invitee User    `gorm:"foreignKey:InviteeID" json:"invitee,omitempty"`
}
