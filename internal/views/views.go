// Package views contains the pure derived views recomputed over cached
// collections: groupings and filters with no storage of their own.
package views

import (
	"sort"
	"time"

	"github.com/Samuel04-png/aether-api/internal/constants"
	"github.com/Samuel04-png/aether-api/internal/dto"
	"github.com/Samuel04-png/aether-api/internal/models"
)

// TaskPartition groups tasks by stage. Every task lands in exactly one
// bucket; all three buckets are always present.
type TaskPartition struct {
	Todo       []dto.TaskDTO `json:"todo"`
	InProgress []dto.TaskDTO `json:"in_progress"`
	Done       []dto.TaskDTO `json:"done"`
}

// PartitionByStatus partitions tasks into the fixed stage set. The mapper
// guarantees statuses are valid, but anything unexpected still falls into
// the todo bucket so the partition stays total and disjoint.
func PartitionByStatus(tasks []dto.TaskDTO) TaskPartition {
	partition := TaskPartition{
		Todo:       []dto.TaskDTO{},
		InProgress: []dto.TaskDTO{},
		Done:       []dto.TaskDTO{},
	}

	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusInProgress:
			partition.InProgress = append(partition.InProgress, task)
		case models.TaskStatusDone:
			partition.Done = append(partition.Done, task)
		default:
			partition.Todo = append(partition.Todo, task)
		}
	}

	return partition
}

// UpcomingDeadlines returns tasks due strictly after now and strictly before
// now plus the deadline window, excluding tasks already done. Results sort
// by due date ascending.
func UpcomingDeadlines(tasks []dto.TaskDTO, now time.Time) []dto.TaskDTO {
	horizon := now.AddDate(0, 0, constants.UpcomingDeadlineDays)

	upcoming := []dto.TaskDTO{}
	for _, task := range tasks {
		if task.DueDate == nil || task.Status == models.TaskStatusDone {
			continue
		}
		due := *task.DueDate
		if due.After(now) && due.Before(horizon) {
			upcoming = append(upcoming, task)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].DueDate.Before(*upcoming[j].DueDate)
	})

	return upcoming
}

// RankPendingInvites returns only pending invites, newest first.
func RankPendingInvites(invites []dto.InviteDTO) []dto.InviteDTO {
	pending := []dto.InviteDTO{}
	for _, invite := range invites {
		if invite.Status == models.InviteStatusPending {
			pending = append(pending, invite)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.After(pending[j].CreatedAt)
	})

	return pending
}

// ProjectProgress computes the completed/total percentage for a project's
// task set. Zero tasks means progress cannot be derived; callers keep the
// stored value in that case.
func ProjectProgress(tasks []dto.TaskDTO) (percent int, derivable bool) {
	if len(tasks) == 0 {
		return 0, false
	}

	done := 0
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone {
			done++
		}
	}

	return done * 100 / len(tasks), true
}

// PipelineValue sums unarchived lead value per stage.
func PipelineValue(leads []dto.LeadDTO) map[models.LeadStage]float64 {
	totals := make(map[models.LeadStage]float64)
	for _, lead := range leads {
		if lead.Archived {
			continue
		}
		totals[lead.Stage] += lead.Value
	}
	return totals
}
