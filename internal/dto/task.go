package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// TeamMemberDTO represents a team member in API responses
type TeamMemberDTO struct {
	ID        uint64                  `json:"id"`
	Name      string                  `json:"name"`
	Role      string                  `json:"role"`
	AvatarURL string                  `json:"avatar_url"`
	Email     string                  `json:"email,omitempty"`
	Status    models.MembershipStatus `json:"status"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	DueDate     *time.Time        `json:"due_date,omitempty"`
	AssigneeID  *uint64           `json:"assignee_id,omitempty"`
	ProjectID   *uint64           `json:"project_id,omitempty"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Assignee    *TeamMemberDTO    `json:"assignee,omitempty"`
}

// ToTeamMemberDTO converts a TeamMember model to TeamMemberDTO
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	dto := TeamMemberDTO{
		ID:        member.ID,
		Name:      member.Name,
		Role:      member.Role,
		AvatarURL: member.AvatarURL,
		Email:     member.Email,
		Status:    member.Status,
	}
	if dto.Name == "" {
		dto.Name = UnknownUserName
	}
	if dto.Status == "" {
		dto.Status = models.MembershipAccepted
	}
	return dto
}

// ToTaskDTO converts a Task model to TaskDTO. The mapper never fails: a
// status outside the fixed stage set is coerced to todo so it cannot leak
// into derived partitions as its own key.
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		DueDate:     task.DueDate,
		AssigneeID:  task.AssigneeID,
		ProjectID:   task.ProjectID,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if !dto.Status.Valid() {
		dto.Status = models.TaskStatusTodo
	}

	if task.Assignee != nil {
		assignee := ToTeamMemberDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs maps a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}

// ToTeamMemberDTOs maps a slice of team members.
func ToTeamMemberDTOs(members []models.TeamMember) []TeamMemberDTO {
	out := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		out[i] = ToTeamMemberDTO(member)
	}
	return out
}
