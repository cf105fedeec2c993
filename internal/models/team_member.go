package models

import (
	"time"

	"gorm.io/gorm"
)

type MembershipStatus string

const (
	MembershipPending  MembershipStatus = "pending"
	MembershipAccepted MembershipStatus = "accepted"
	MembershipRejected MembershipStatus = "rejected"
)

// TeamMember is a person in the owner's workspace. Members are records in the
// owner's namespace; they reference platform users only through invites.
type TeamMember struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	OwnerID   uint64           `gorm:"not null;index" json:"owner_id"`
	Name      string           `gorm:"type:varchar(100);not null" json:"name"`
	Role      string           `gorm:"type:varchar(50)" json:"role"`
	AvatarURL string           `gorm:"type:varchar(512)" json:"avatar_url"`
	Email     string           `gorm:"type:varchar(255)" json:"email"`
	Status    MembershipStatus `gorm:"type:varchar(20);not null;default:'accepted'" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}
