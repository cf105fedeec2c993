package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrNotProjectOwner     = errors.New("project belongs to another workspace")
	ErrProjectNameRequired = errors.New("project name is required")
	ErrProgressOutOfRange  = errors.New("progress must be between 0 and 100")
	ErrProgressDerived     = errors.New("progress is derived from tasks once the project has any")
	ErrMessageBodyRequired = errors.New("message body is required")
)

// ProjectService is the mutation facade for projects and their embedded
// collections (members, files, discussion messages).
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	teamRepo    repository.TeamRepository
	feed        *live.Feed
	log         *logger.Logger
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, teamRepo repository.TeamRepository, feed *live.Feed, log *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		teamRepo:    teamRepo,
		feed:        feed,
		log:         log,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	Status      models.ProjectStatus
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	// Progress is accepted only while the project has no tasks; once tasks
	// exist the computed completion ratio is the single authority.
	Progress *int
}

// ListProjects returns the owner's projects. Absent owner yields empty.
func (s *ProjectService) ListProjects(ownerID uint64) ([]models.Project, error) {
	if ownerID == 0 {
		return []models.Project{}, nil
	}

	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project with embedded collections, verifying
// workspace ownership.
func (s *ProjectService) GetProject(projectID, ownerID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID, "Tasks", "Members", "Files", "Messages", "Messages.Sender")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	if project.OwnerID != ownerID {
		return nil, ErrNotProjectOwner
	}

	return project, nil
}

// CreateProject creates a new project in the owner's namespace.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID uint64, input CreateProjectInput) (*models.Project, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if input.Name == "" {
		return nil, ErrProjectNameRequired
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusPlanning
	}

	project := &models.Project{
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		Status:      input.Status,
	}

	if err := writeThrough(ctx, "project", func() error { return s.projectRepo.Create(project) }); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))

	return project, nil
}

// UpdateProject updates a project's fields.
func (s *ProjectService) UpdateProject(ctx context.Context, projectID, ownerID uint64, input UpdateProjectInput) (*models.Project, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != ownerID {
		return nil, ErrNotProjectOwner
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Progress != nil {
		if *input.Progress < 0 || *input.Progress > 100 {
			return nil, ErrProgressOutOfRange
		}
		_, total, err := s.taskRepo.CountByProject(project.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to count project tasks: %w", err)
		}
		if total > 0 {
			return nil, ErrProgressDerived
		}
		project.Progress = *input.Progress
	}

	if err := writeThrough(ctx, "project", func() error { return s.projectRepo.Update(project) }); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))

	return project, nil
}

// DeleteProject soft deletes a project; its tasks survive, detached.
func (s *ProjectService) DeleteProject(ctx context.Context, projectID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != ownerID {
		return ErrNotProjectOwner
	}

	if err := writeThrough(ctx, "project", func() error { return s.projectRepo.Delete(projectID) }); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))
	s.feed.Publish(live.UserTasks(ownerID))

	return nil
}

// AddMember attaches a workspace team member to a project.
func (s *ProjectService) AddMember(ctx context.Context, projectID, ownerID, memberID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != ownerID {
		return ErrNotProjectOwner
	}

	member, err := s.teamRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownAssignee
		}
		return fmt.Errorf("failed to find member: %w", err)
	}
	if member.OwnerID != ownerID {
		return ErrUnknownAssignee
	}

	if err := writeThrough(ctx, "project", func() error { return s.projectRepo.AddMember(projectID, memberID) }); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))

	return nil
}

// AttachFileInput describes an uploaded file record.
type AttachFileInput struct {
	Name string
	Size int64
}

// AttachFile records an uploaded file against a project and returns the
// storage key the blob was stored under.
func (s *ProjectService) AttachFile(ctx context.Context, projectID, ownerID uint64, input AttachFileInput) (*models.ProjectFile, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if _, err := s.GetProject(projectID, ownerID); err != nil {
		return nil, err
	}

	file := &models.ProjectFile{
		ProjectID:  projectID,
		Name:       input.Name,
		StorageKey: uuid.NewString(),
		Size:       input.Size,
		UploaderID: ownerID,
	}

	if err := writeThrough(ctx, "project_file", func() error { return s.projectRepo.AddFile(file) }); err != nil {
		return nil, fmt.Errorf("failed to attach file: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))

	return file, nil
}

// PostMessage appends a message to the project discussion.
func (s *ProjectService) PostMessage(ctx context.Context, projectID, ownerID uint64, body string) (*models.ProjectMessage, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if body == "" {
		return nil, ErrMessageBodyRequired
	}
	if _, err := s.GetProject(projectID, ownerID); err != nil {
		return nil, err
	}

	message := &models.ProjectMessage{
		ProjectID: projectID,
		SenderID:  ownerID,
		Body:      body,
	}

	if err := writeThrough(ctx, "project_message", func() error { return s.projectRepo.AddMessage(message) }); err != nil {
		return nil, fmt.Errorf("failed to post message: %w", err)
	}

	s.feed.Publish(live.UserProjects(ownerID))

	return message, nil
}
