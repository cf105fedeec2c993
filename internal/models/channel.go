package models

import (
	"time"

	"gorm.io/gorm"
)

type ChannelType string

const (
	ChannelTypePublic  ChannelType = "public"
	ChannelTypePrivate ChannelType = "private"
	ChannelTypeDirect  ChannelType = "direct"
)

// Valid reports whether t is one of the known channel types.
func (t ChannelType) Valid() bool {
	switch t {
	case ChannelTypePublic, ChannelTypePrivate, ChannelTypeDirect:
		return true
	}
	return false
}

// Channel lives in the shared namespace and references user ids by value.
type Channel struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Type      ChannelType    `gorm:"type:varchar(20);not null;default:'public'" json:"type"`
	CreatorID uint64         `gorm:"not null" json:"creator_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members  []ChannelMember `gorm:"foreignKey:ChannelID" json:"members,omitempty"`
	Messages []ChatMessage   `gorm:"foreignKey:ChannelID" json:"messages,omitempty"`
}

type ChannelMember struct {
	ChannelID uint64    `gorm:"primarykey" json:"channel_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	JoinedAt  time.Time `json:"joined_at"`
}

// ChatMessage is ordered by creation time within its channel.
type ChatMessage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ChannelID uint64    `gorm:"not null;index" json:"channel_id"`
	SenderID  uint64    `gorm:"not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
