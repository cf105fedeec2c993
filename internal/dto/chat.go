package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// ChannelDTO represents a chat channel in API responses
type ChannelDTO struct {
	ID        uint64             `json:"id"`
	Name      string             `json:"name"`
	Type      models.ChannelType `json:"type"`
	CreatorID uint64             `json:"creator_id"`
	MemberIDs []uint64           `json:"member_ids"`
	CreatedAt time.Time          `json:"created_at"`
}

// ChatMessageDTO represents a chat message in API responses
type ChatMessageDTO struct {
	ID         uint64    `json:"id"`
	ChannelID  uint64    `json:"channel_id"`
	SenderID   uint64    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	AvatarURL  string    `json:"avatar_url"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToChannelDTO converts a Channel model to ChannelDTO. A missing member list
// maps to an empty id set, never null.
func ToChannelDTO(channel models.Channel) ChannelDTO {
	dto := ChannelDTO{
		ID:        channel.ID,
		Name:      channel.Name,
		Type:      channel.Type,
		CreatorID: channel.CreatorID,
		MemberIDs: []uint64{},
		CreatedAt: channel.CreatedAt,
	}
	if dto.Type == "" {
		dto.Type = models.ChannelTypePublic
	}
	for _, m := range channel.Members {
		dto.MemberIDs = append(dto.MemberIDs, m.UserID)
	}
	return dto
}

// ToChannelDTOs maps a slice of channels.
func ToChannelDTOs(channels []models.Channel) []ChannelDTO {
	out := make([]ChannelDTO, len(channels))
	for i, channel := range channels {
		out[i] = ToChannelDTO(channel)
	}
	return out
}

// ToChatMessageDTOs maps channel messages. Messages with no sender are
// dropped; messages whose sender record was not loaded get the Unknown User
// placeholder instead.
func ToChatMessageDTOs(messages []models.ChatMessage) []ChatMessageDTO {
	out := make([]ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		if m.SenderID == 0 {
			continue
		}
		senderName := m.Sender.DisplayName
		if senderName == "" {
			senderName = UnknownUserName
		}
		out = append(out, ChatMessageDTO{
			ID:         m.ID,
			ChannelID:  m.ChannelID,
			SenderID:   m.SenderID,
			SenderName: senderName,
			AvatarURL:  m.Sender.AvatarURL,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out
}
