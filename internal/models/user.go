package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	DisplayName  string         `gorm:"type:varchar(100);not null" json:"display_name"`
	AvatarURL    string         `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks    []Task       `gorm:"foreignKey:OwnerID" json:"-"`
	Projects []Project    `gorm:"foreignKey:OwnerID" json:"-"`
	Team     []TeamMember `gorm:"foreignKey:OwnerID" json:"-"`
}
