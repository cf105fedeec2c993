package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on_hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	OwnerID     uint64         `gorm:"not null;index" json:"owner_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      ProjectStatus  `gorm:"type:varchar(20);not null;default:'planning'" json:"status"`
	Progress    int            `gorm:"not null;default:0" json:"progress"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Tasks    []Task           `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Members  []TeamMember     `gorm:"many2many:project_members" json:"members,omitempty"`
	Files    []ProjectFile    `gorm:"foreignKey:ProjectID" json:"files,omitempty"`
	Messages []ProjectMessage `gorm:"foreignKey:ProjectID" json:"messages,omitempty"`
}

type ProjectFile struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	ProjectID  uint64    `gorm:"not null;index" json:"project_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	StorageKey string    `gorm:"type:varchar(64);not null" json:"storage_key"`
	Size       int64     `json:"size"`
	UploaderID uint64    `gorm:"not null" json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProjectMessage struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"project_id"`
	SenderID  uint64    `gorm:"not null" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
