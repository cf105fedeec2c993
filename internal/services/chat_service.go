package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrChannelNotFound     = errors.New("channel not found")
	ErrChannelNameRequired = errors.New("channel name is required")
	ErrInvalidChannelType  = errors.New("invalid channel type")
	ErrNotChannelMember    = errors.New("not a member of this channel")
	ErrSenderUnknown       = errors.New("message sender is unknown")
)

// ChatService is the mutation facade for channels and chat messages.
type ChatService struct {
	channelRepo repository.ChannelRepository
	feed        *live.Feed
	log         *logger.Logger
}

// NewChatService creates a new ChatService
func NewChatService(channelRepo repository.ChannelRepository, feed *live.Feed, log *logger.Logger) *ChatService {
	return &ChatService{
		channelRepo: channelRepo,
		feed:        feed,
		log:         log,
	}
}

// CreateChannelInput represents input for creating a channel
type CreateChannelInput struct {
	Name string
	Type models.ChannelType
}

// ListChannels returns the channels visible to the user: public ones plus
// private and direct channels the user belongs to.
func (s *ChatService) ListChannels(userID uint64) ([]models.Channel, error) {
	if userID == 0 {
		return []models.Channel{}, nil
	}

	channels, err := s.channelRepo.ListForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	return channels, nil
}

// CreateChannel creates a channel and makes the creator its first member.
func (s *ChatService) CreateChannel(ctx context.Context, userID uint64, input CreateChannelInput) (*models.Channel, error) {
	if userID == 0 {
		return nil, ErrNoScopingID
	}
	if input.Name == "" {
		return nil, ErrChannelNameRequired
	}
	if input.Type == "" {
		input.Type = models.ChannelTypePublic
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidChannelType
	}

	channel := &models.Channel{
		Name:      input.Name,
		Type:      input.Type,
		CreatorID: userID,
	}

	if err := writeThrough(ctx, "channel", func() error {
		if err := s.channelRepo.Create(channel); err != nil {
			return err
		}
		return s.channelRepo.AddMember(channel.ID, userID)
	}); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	s.feed.Publish(live.Channels())

	return channel, nil
}

// JoinChannel adds the user to a public channel. Joining a channel the user
// already belongs to is a no-op.
func (s *ChatService) JoinChannel(ctx context.Context, channelID, userID uint64) error {
	if userID == 0 {
		return ErrNoScopingID
	}

	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChannelNotFound
		}
		return fmt.Errorf("failed to find channel: %w", err)
	}
	if channel.Type != models.ChannelTypePublic {
		return ErrNotChannelMember
	}

	if err := writeThrough(ctx, "channel_member", func() error {
		return s.channelRepo.AddMember(channelID, userID)
	}); err != nil {
		return fmt.Errorf("failed to join channel: %w", err)
	}

	s.feed.Publish(live.Channels())

	return nil
}

// LeaveChannel removes the user from a channel.
func (s *ChatService) LeaveChannel(ctx context.Context, channelID, userID uint64) error {
	if userID == 0 {
		return ErrNoScopingID
	}

	if err := writeThrough(ctx, "channel_member", func() error {
		return s.channelRepo.RemoveMember(channelID, userID)
	}); err != nil {
		return fmt.Errorf("failed to leave channel: %w", err)
	}

	s.feed.Publish(live.Channels())

	return nil
}

// ListMessages returns a channel's messages in send order, oldest first.
// Private and direct channels require membership.
func (s *ChatService) ListMessages(channelID, userID uint64) ([]models.ChatMessage, error) {
	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}

	if channel.Type != models.ChannelTypePublic {
		member, err := s.channelRepo.IsMember(channelID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return nil, ErrNotChannelMember
		}
	}

	messages, err := s.channelRepo.ListMessages(channelID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// SendMessage appends a message to a channel. The sender must be signed in
// and, for non-public channels, a member.
func (s *ChatService) SendMessage(ctx context.Context, channelID, userID uint64, body string) (*models.ChatMessage, error) {
	if userID == 0 {
		return nil, ErrNoScopingID
	}
	if body == "" {
		return nil, ErrMessageBodyRequired
	}

	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("failed to find channel: %w", err)
	}

	if channel.Type != models.ChannelTypePublic {
		member, err := s.channelRepo.IsMember(channelID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if !member {
			return nil, ErrNotChannelMember
		}
	}

	message := &models.ChatMessage{
		ChannelID: channelID,
		SenderID:  userID,
		Body:      body,
	}

	if err := writeThrough(ctx, "chat_message", func() error {
		return s.channelRepo.AddMessage(message)
	}); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	s.feed.Publish(live.ChannelMessages(channelID))

	return message, nil
}
