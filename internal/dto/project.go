package dto

import (
	"time"

	"github.com/Samuel04-png/aether-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID          uint64               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      models.ProjectStatus `json:"status"`
	Progress    int                  `json:"progress"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	Tasks       []TaskDTO            `json:"tasks"`
	Members     []TeamMemberDTO      `json:"members"`
	Files       []ProjectFileDTO     `json:"files"`
	Messages    []ProjectMessageDTO  `json:"messages"`
}

// ProjectFileDTO represents an uploaded project file
type ProjectFileDTO struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	StorageKey string    `json:"storage_key"`
	Size       int64     `json:"size"`
	UploaderID uint64    `json:"uploader_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// ProjectMessageDTO represents a message on a project's own discussion
type ProjectMessageDTO struct {
	ID         uint64    `json:"id"`
	SenderID   uint64    `json:"sender_id"`
	SenderName string    `json:"sender_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO. Nested collections
// default to empty slices so consumers never see null where a list belongs.
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		Progress:    clampProgress(project.Progress),
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		Tasks:       []TaskDTO{},
		Members:     []TeamMemberDTO{},
		Files:       []ProjectFileDTO{},
		Messages:    []ProjectMessageDTO{},
	}

	if dto.Status == "" {
		dto.Status = models.ProjectStatusPlanning
	}

	if len(project.Tasks) > 0 {
		dto.Tasks = ToTaskDTOs(project.Tasks)
	}
	if len(project.Members) > 0 {
		dto.Members = ToTeamMemberDTOs(project.Members)
	}
	for _, f := range project.Files {
		dto.Files = append(dto.Files, ProjectFileDTO{
			ID:         f.ID,
			Name:       f.Name,
			StorageKey: f.StorageKey,
			Size:       f.Size,
			UploaderID: f.UploaderID,
			CreatedAt:  f.CreatedAt,
		})
	}
	for _, m := range project.Messages {
		senderName := m.Sender.DisplayName
		if senderName == "" {
			senderName = UnknownUserName
		}
		dto.Messages = append(dto.Messages, ProjectMessageDTO{
			ID:         m.ID,
			SenderID:   m.SenderID,
			SenderName: senderName,
			Body:       m.Body,
			CreatedAt:  m.CreatedAt,
		})
	}

	return dto
}

// ToProjectDTOs maps a slice of projects.
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	out := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		out[i] = ToProjectDTO(project)
	}
	return out
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
