package repository

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks in an owner's namespace with filtering
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// CountByProject returns done and total task counts for a project
	CountByProject(projectID uint64) (done int64, total int64, err error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OwnerID       uint64
	Status        *models.TaskStatus
	ProjectID     *uint64
	AssigneeID    *uint64
	DueDateFrom   *time.Time
	DueDateTo     *time.Time
	SortByDueDate bool
	Page          int
	PageSize      int
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64, preload ...string) (*models.Project, error)
	ListByOwner(ownerID uint64) ([]models.Project, error)
	Update(project *models.Project) error
	// UpdateProgress writes only the stored progress column
	UpdateProgress(id uint64, progress int) error
	// Delete soft deletes a project and detaches its tasks
	Delete(id uint64) error
	AddMember(projectID, memberID uint64) error
	AddFile(file *models.ProjectFile) error
	AddMessage(message *models.ProjectMessage) error
}

// TeamRepository defines the interface for workspace team members
type TeamRepository interface {
	Create(member *models.TeamMember) error
	FindByID(id uint64) (*models.TeamMember, error)
	ListByOwner(ownerID uint64) ([]models.TeamMember, error)
	Update(member *models.TeamMember) error
	Delete(id uint64) error
}

// ChannelRepository defines the interface for chat data access
type ChannelRepository interface {
	Create(channel *models.Channel) error
	FindByID(id uint64, preload ...string) (*models.Channel, error)
	// ListForUser lists public channels plus private/direct ones the user
	// belongs to
	ListForUser(userID uint64) ([]models.Channel, error)
	AddMember(channelID, userID uint64) error
	RemoveMember(channelID, userID uint64) error
	IsMember(channelID, userID uint64) (bool, error)
	// AddMessage appends a message to the channel's sub-collection
	AddMessage(message *models.ChatMessage) error
	// ListMessages returns channel messages ordered by creation time
	ListMessages(channelID uint64, limit int) ([]models.ChatMessage, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(notification *models.Notification) error
	FindByID(id uint64) (*models.Notification, error)
	ListByOwner(ownerID uint64) ([]models.Notification, error)
	MarkRead(id uint64) error
	MarkAllRead(ownerID uint64) error
	// Delete hard deletes a notification
	Delete(id uint64) error
}

// InviteRepository defines the interface for project invite data access
type InviteRepository interface {
	Create(invite *models.ProjectInvite) error
	FindByID(id uint64, preload ...string) (*models.ProjectInvite, error)
	ListByInvitee(inviteeID uint64) ([]models.ProjectInvite, error)
	ListByInviter(inviterID uint64) ([]models.ProjectInvite, error)
	FindPending(projectID, inviteeID uint64) (*models.ProjectInvite, error)
	// UpdateStatus transitions an invite; invites are never deleted
	UpdateStatus(id uint64, status models.InviteStatus) error
}

// LeadRepository defines the interface for lead data access
type LeadRepository interface {
	Create(lead *models.Lead) error
	FindByID(id uint64) (*models.Lead, error)
	// ListByOwner lists leads, optionally including archived ones
	ListByOwner(ownerID uint64, includeArchived bool) ([]models.Lead, error)
	Update(lead *models.Lead) error
	// Archive marks a lead archived in place; leads are never hard-deleted
	Archive(id uint64, at time.Time) error
	Unarchive(id uint64) error
}

// StatRepository defines the interface for dashboard KPI rows
type StatRepository interface {
	ListByOwner(ownerID uint64) ([]models.DashboardStat, error)
	// Upsert writes one KPI row keyed by owner, label and period
	Upsert(stat *models.DashboardStat) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// CreateWithWorkspace creates a user and seeds their workspace (their
	// own team-member record) within a single transaction.
	CreateWithWorkspace(user *models.User, self *models.TeamMember) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}
