package repository

import (
	"gorm.io/gorm"

	"github.com/Samuel04-png/aether-api/internal/database"
	"github.com/Samuel04-png/aether-api/internal/models"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *GormNotificationRepository) ListByOwner(ownerID uint64) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.Scopes(database.OwnedBy(ownerID)).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *GormNotificationRepository) MarkRead(id uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ?", id).
		Update("read", true).Error
}

func (r *GormNotificationRepository) MarkAllRead(ownerID uint64) error {
	return r.db.Model(&models.Notification{}).
		Where("owner_id = ? AND read = ?", ownerID, false).
		Update("read", true).Error
}

// Delete hard deletes a notification; there is no archive for these.
func (r *GormNotificationRepository) Delete(id uint64) error {
	return r.db.Unscoped().Delete(&models.Notification{}, id).Error
}
