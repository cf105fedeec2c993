package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64                      `json:"id"`
	Body      string                      `json:"body"`
	Category  models.NotificationCategory `json:"category"`
	Read      bool                        `json:"read"`
	Meta      models.NotificationMeta     `json:"meta"`
	CreatedAt time.Time                   `json:"created_at"`
}

// ToNotificationDTO converts a Notification model to NotificationDTO. An
// unknown category maps to the system bucket.
func ToNotificationDTO(n models.Notification) NotificationDTO {
	dto := NotificationDTO{
		ID:        n.ID,
		Body:      n.Body,
		Category:  n.Category,
		Read:      n.Read,
		Meta:      n.Meta,
		CreatedAt: n.CreatedAt,
	}
	switch dto.Category {
	case models.NotificationCategoryTask,
		models.NotificationCategoryProject,
		models.NotificationCategoryChat,
		models.NotificationCategoryInvite,
		models.NotificationCategoryLead,
		models.NotificationCategorySystem:
	default:
		dto.Category = models.NotificationCategorySystem
	}
	return dto
}

// ToNotificationDTOs maps a slice of notifications.
func ToNotificationDTOs(notifications []models.Notification) []NotificationDTO {
	out := make([]NotificationDTO, len(notifications))
	for i, n := range notifications {
		out[i] = ToNotificationDTO(n)
	}
	return out
}
