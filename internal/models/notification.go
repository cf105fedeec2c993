package models

import "time"

type NotificationCategory string

const (
	NotificationCategoryTask    NotificationCategory = "task"
	NotificationCategoryProject NotificationCategory = "project"
	NotificationCategoryChat    NotificationCategory = "chat"
	NotificationCategoryInvite  NotificationCategory = "invite"
	NotificationCategoryLead    NotificationCategory = "lead"
	NotificationCategorySystem  NotificationCategory = "system"
)

// NotificationMeta is the optional metadata bag carried by a notification.
type NotificationMeta struct {
	InviteID  *uint64 `json:"invite_id,omitempty"`
	TaskID    *uint64 `json:"task_id,omitempty"`
	ProjectID *uint64 `json:"project_id,omitempty"`
	ChannelID *uint64 `json:"channel_id,omitempty"`
}

// Notification rows are throwaway: they are hard-deleted, never archived.
type Notification struct {
	ID        uint64               `gorm:"primarykey" json:"id"`
	OwnerID   uint64               `gorm:"not null;index" json:"owner_id"`
	Body      string               `gorm:"type:text;not null" json:"body"`
	Category  NotificationCategory `gorm:"type:varchar(20);not null" json:"category"`
	Read      bool                 `gorm:"not null;default:false" json:"read"`
	Meta      NotificationMeta     `gorm:"serializer:json" json:"meta"`
	CreatedAt time.Time            `json:"created_at"`
}
