package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrNotTaskOwner       = errors.New("task belongs to another workspace")
	ErrTitleRequired      = errors.New("title is required")
	ErrTitleEmpty         = errors.New("title cannot be empty")
	ErrInvalidTaskStatus  = errors.New("status is not a valid stage")
	ErrUnknownAssignee    = errors.New("assignee is not a member of the workspace")
	ErrUnknownProject     = errors.New("project does not exist in the workspace")
)

// TaskService is the mutation facade for tasks. Every write is a single
// store operation followed by a feed publish; callers observe results
// through the live subscription, not through mutated shared state.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	feed        *live.Feed
	log         *logger.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, feed *live.Feed, log *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		feed:        feed,
		log:         log,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	OwnerID       uint64
	Status        *models.TaskStatus
	ProjectID     *uint64
	AssigneeID    *uint64
	DueWithinDays int
	SortByDueDate bool
	Page          int
	PageSize      int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	DueDate     *time.Time
	AssigneeID  *uint64
	ProjectID   *uint64
}

// UpdateTaskInput represents input for updating a task
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	DueDate       *time.Time
	ClearDueDate  bool
	AssigneeID    *uint64
	ClearAssignee bool
}

// ListTasks returns tasks in the owner's namespace. An absent owner yields
// an empty result, never an error: querying without a scoping id is a
// guarded no-op.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.OwnerID == 0 {
		return []models.Task{}, 0, nil
	}

	filter := repository.TaskFilter{
		OwnerID:       input.OwnerID,
		Status:        input.Status,
		ProjectID:     input.ProjectID,
		AssigneeID:    input.AssigneeID,
		SortByDueDate: input.SortByDueDate,
		Page:          input.Page,
		PageSize:      input.PageSize,
	}

	if input.DueWithinDays > 0 {
		now := time.Now()
		horizon := now.AddDate(0, 0, input.DueWithinDays)
		filter.DueDateFrom = &now
		filter.DueDateTo = &horizon
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data, verifying workspace ownership.
func (s *TaskService) GetTask(taskID, ownerID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Assignee", "Project")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != ownerID {
		return nil, ErrNotTaskOwner
	}

	return task, nil
}

// CreateTask creates a new task in the owner's namespace. Optional fields
// stay absent when not provided; they are never written as nulls with
// meaning.
func (s *TaskService) CreateTask(ctx context.Context, ownerID uint64, input CreateTaskInput) (*models.Task, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	if err := s.validateAssignee(ownerID, input.AssigneeID); err != nil {
		return nil, err
	}
	if err := s.validateProject(ownerID, input.ProjectID); err != nil {
		return nil, err
	}

	task := &models.Task{
		OwnerID:     ownerID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		DueDate:     input.DueDate,
		AssigneeID:  input.AssigneeID,
		ProjectID:   input.ProjectID,
	}
	if task.Status == models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := writeThrough(ctx, "task", func() error { return s.taskRepo.Create(task) }); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.publish(ctx, task)

	return task, nil
}

// UpdateTask updates an existing task's fields other than status.
func (s *TaskService) UpdateTask(ctx context.Context, taskID, ownerID uint64, input UpdateTaskInput) (*models.Task, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}

	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.ClearAssignee {
		task.AssigneeID = nil
		task.Assignee = nil
	} else if input.AssigneeID != nil {
		if err := s.validateAssignee(ownerID, input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = input.AssigneeID
		task.Assignee = nil
	}

	if err := writeThrough(ctx, "task", func() error { return s.taskRepo.Update(task) }); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.publish(ctx, task)

	return s.taskRepo.FindByID(task.ID, "Assignee", "Project")
}

// SetTaskStatus transitions a task to the given stage. The operation is
// idempotent: repeating the same target status changes nothing beyond the
// redundant write.
func (s *TaskService) SetTaskStatus(ctx context.Context, taskID, ownerID uint64, status models.TaskStatus) (*models.Task, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = status
	switch status {
	case models.TaskStatusDone:
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	default:
		task.CompletedAt = nil
	}

	if err := writeThrough(ctx, "task", func() error { return s.taskRepo.Update(task) }); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	s.publish(ctx, task)

	return task, nil
}

// DeleteTask soft deletes a task.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	task, err := s.GetTask(taskID, ownerID)
	if err != nil {
		return err
	}

	if err := writeThrough(ctx, "task", func() error { return s.taskRepo.Delete(task.ID) }); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publish(ctx, task)

	return nil
}

// publish announces the change and refreshes dependent project progress.
// The progress write is a second, independently-failable write: a failure
// here leaves the stored progress stale until the next task mutation, and
// is logged rather than returned.
func (s *TaskService) publish(ctx context.Context, task *models.Task) {
	s.feed.Publish(live.UserTasks(task.OwnerID))

	if task.ProjectID == nil {
		return
	}

	done, total, err := s.taskRepo.CountByProject(*task.ProjectID)
	if err == nil && total > 0 {
		err = s.projectRepo.UpdateProgress(*task.ProjectID, int(done*100/total))
	}
	if err != nil {
		s.log.WithUser(task.OwnerID).Error("progress recompute failed", "project_id", *task.ProjectID, "error", err)
	}

	s.feed.Publish(live.UserProjects(task.OwnerID))
}

func (s *TaskService) validateAssignee(ownerID uint64, assigneeID *uint64) error {
	if assigneeID == nil {
		return nil
	}
	member, err := s.teamRepo.FindByID(*assigneeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownAssignee
		}
		return fmt.Errorf("failed to verify assignee: %w", err)
	}
	if member.OwnerID != ownerID {
		return ErrUnknownAssignee
	}
	return nil
}

func (s *TaskService) validateProject(ownerID uint64, projectID *uint64) error {
	if projectID == nil {
		return nil
	}
	project, err := s.projectRepo.FindByID(*projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownProject
		}
		return fmt.Errorf("failed to verify project: %w", err)
	}
	if project.OwnerID != ownerID {
		return ErrUnknownProject
	}
	return nil
}
