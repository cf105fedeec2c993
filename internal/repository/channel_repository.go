package repository

import (
	"errors"

	"github.com/Samuel04-png/aether-api/internal/models"
	"gorm.io/gorm"
)

// GormChannelRepository is a GORM implementation of ChannelRepository
type GormChannelRepository struct {
	db *gorm.DB
}

// NewChannelRepository creates a new ChannelRepository
func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &GormChannelRepository{db: db}
}

func (r *GormChannelRepository) Create(channel *models.Channel) error {
	return r.db.Create(channel).Error
}

func (r *GormChannelRepository) FindByID(id uint64, preload ...string) (*models.Channel, error) {
	var channel models.Channel
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&channel, id).Error; err != nil {
		return nil, err
	}

	return &channel, nil
}

// ListForUser lists public channels plus private/direct ones the user belongs to
func (r *GormChannelRepository) ListForUser(userID uint64) ([]models.Channel, error) {
	var channels []models.Channel

	memberSubQuery := r.db.Model(&models.ChannelMember{}).
		Select("channel_id").
		Where("user_id = ?", userID)

	if err := r.db.Preload("Members").
		Where("type = ? OR id IN (?)", models.ChannelTypePublic, memberSubQuery).
		Order("created_at ASC").
		Find(&channels).Error; err != nil {
		return nil, err
	}

	return channels, nil
}

func (r *GormChannelRepository) AddMember(channelID, userID uint64) error {
	member := models.ChannelMember{
		ChannelID: channelID,
		UserID:    userID,
	}
	err := r.db.Create(&member).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Joining twice is a no-op.
		return nil
	}
	return err
}

func (r *GormChannelRepository) RemoveMember(channelID, userID uint64) error {
	return r.db.Where("channel_id = ? AND user_id = ?", channelID, userID).
		Delete(&models.ChannelMember{}).Error
}

func (r *GormChannelRepository) IsMember(channelID, userID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddMessage appends a message to the channel's sub-collection
func (r *GormChannelRepository) AddMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

// ListMessages returns channel messages ordered by creation time
func (r *GormChannelRepository) ListMessages(channelID uint64, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := r.db.Preload("Sender").
		Where("channel_id = ?", channelID).
		Order("created_at ASC, id ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}
