package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s belongs to the fixed stage set.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	OwnerID     uint64         `gorm:"not null;index" json:"owner_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	DueDate     *time.Time     `json:"due_date"`
	AssigneeID  *uint64        `gorm:"index" json:"assignee_id"`
	ProjectID   *uint64        `gorm:"index" json:"project_id"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner    User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Assignee *TeamMember `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Project  *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
