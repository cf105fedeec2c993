package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
)

// KPI labels stored per owner and period.
const (
	StatOpenTasks      = "open_tasks"
	StatCompletedTasks = "completed_tasks"
	StatActiveProjects = "active_projects"
	StatPipelineValue  = "pipeline_value"
	StatTeamSize       = "team_size"
)

// DashboardService recomputes and serves the stored KPI rows backing the
// dashboard's stats collection.
type DashboardService struct {
	statRepo    repository.StatRepository
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	teamRepo    repository.TeamRepository
	leadRepo    repository.LeadRepository
	feed        *live.Feed
	log         *logger.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(statRepo repository.StatRepository, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, leadRepo repository.LeadRepository, feed *live.Feed, log *logger.Logger) *DashboardService {
	return &DashboardService{
		statRepo:    statRepo,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		teamRepo:    teamRepo,
		leadRepo:    leadRepo,
		feed:        feed,
		log:         log,
	}
}

// ListStats returns the owner's stored KPI rows.
func (s *DashboardService) ListStats(ownerID uint64) ([]models.DashboardStat, error) {
	if ownerID == 0 {
		return []models.DashboardStat{}, nil
	}

	stats, err := s.statRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stats: %w", err)
	}
	return stats, nil
}

// Recompute rebuilds the owner's KPI rows from the current state of their
// collections and upserts them for the current period.
func (s *DashboardService) Recompute(ctx context.Context, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	period := time.Now().UTC().Format("2006-01")

	tasks, _, err := s.taskRepo.List(repository.TaskFilter{OwnerID: ownerID})
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	open, completed := 0, 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone {
			completed++
		} else {
			open++
		}
	}

	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}
	active := 0
	for _, project := range projects {
		if project.Status == models.ProjectStatusActive {
			active++
		}
	}

	team, err := s.teamRepo.ListByOwner(ownerID)
	if err != nil {
		return fmt.Errorf("failed to load team: %w", err)
	}

	leads, err := s.leadRepo.ListByOwner(ownerID, false)
	if err != nil {
		return fmt.Errorf("failed to load leads: %w", err)
	}
	pipeline := 0.0
	for _, lead := range leads {
		pipeline += lead.Value
	}

	rows := []models.DashboardStat{
		{OwnerID: ownerID, Label: StatOpenTasks, Period: period, Value: float64(open)},
		{OwnerID: ownerID, Label: StatCompletedTasks, Period: period, Value: float64(completed)},
		{OwnerID: ownerID, Label: StatActiveProjects, Period: period, Value: float64(active)},
		{OwnerID: ownerID, Label: StatPipelineValue, Period: period, Value: pipeline},
		{OwnerID: ownerID, Label: StatTeamSize, Period: period, Value: float64(len(team))},
	}

	if err := writeThrough(ctx, "dashboard_stat", func() error {
		for i := range rows {
			if err := s.statRepo.Upsert(&rows[i]); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to upsert stats: %w", err)
	}

	s.feed.Publish(live.UserStats(ownerID))

	return nil
}
