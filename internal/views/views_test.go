package views

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Samuel04-png/aether-api/internal/dto"
	"github.com/Samuel04-png/aether-api/internal/models"
)

func taskWithStatus(id uint64, status models.TaskStatus) dto.TaskDTO {
	return dto.TaskDTO{ID: id, Title: "task", Status: status}
}

func TestPartitionByStatus_TotalAndDisjoint(t *testing.T) {
	tasks := []dto.TaskDTO{
		taskWithStatus(1, models.TaskStatusTodo),
		taskWithStatus(2, models.TaskStatusInProgress),
		taskWithStatus(3, models.TaskStatusDone),
		taskWithStatus(4, models.TaskStatusTodo),
	}

	partition := PartitionByStatus(tasks)

	assert.Len(t, partition.Todo, 2)
	assert.Len(t, partition.InProgress, 1)
	assert.Len(t, partition.Done, 1)

	total := len(partition.Todo) + len(partition.InProgress) + len(partition.Done)
	assert.Equal(t, len(tasks), total)
}

func TestPartitionByStatus_UnexpectedStatusLandsInTodo(t *testing.T) {
	tasks := []dto.TaskDTO{taskWithStatus(1, models.TaskStatus("blocked"))}

	partition := PartitionByStatus(tasks)

	assert.Len(t, partition.Todo, 1)
	assert.Empty(t, partition.InProgress)
	assert.Empty(t, partition.Done)
}

func TestPartitionByStatus_EmptyInputKeepsAllBuckets(t *testing.T) {
	partition := PartitionByStatus(nil)

	assert.NotNil(t, partition.Todo)
	assert.NotNil(t, partition.InProgress)
	assert.NotNil(t, partition.Done)
}

func TestUpcomingDeadlines_WindowIsExclusive(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	past := now.Add(-time.Hour)
	inWindow := now.AddDate(0, 0, 3)
	edge := now.AddDate(0, 0, 7)
	beyond := now.AddDate(0, 0, 10)

	tasks := []dto.TaskDTO{
		{ID: 1, Status: models.TaskStatusTodo, DueDate: &past},
		{ID: 2, Status: models.TaskStatusTodo, DueDate: &inWindow},
		{ID: 3, Status: models.TaskStatusTodo, DueDate: &edge},
		{ID: 4, Status: models.TaskStatusTodo, DueDate: &beyond},
		{ID: 5, Status: models.TaskStatusTodo},
	}

	upcoming := UpcomingDeadlines(tasks, now)

	assert.Len(t, upcoming, 1)
	assert.Equal(t, uint64(2), upcoming[0].ID)
}

func TestUpcomingDeadlines_ExcludesDoneAndSortsAscending(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	later := now.AddDate(0, 0, 5)
	sooner := now.AddDate(0, 0, 2)
	doneDue := now.AddDate(0, 0, 1)

	tasks := []dto.TaskDTO{
		{ID: 1, Status: models.TaskStatusTodo, DueDate: &later},
		{ID: 2, Status: models.TaskStatusInProgress, DueDate: &sooner},
		{ID: 3, Status: models.TaskStatusDone, DueDate: &doneDue},
	}

	upcoming := UpcomingDeadlines(tasks, now)

	assert.Len(t, upcoming, 2)
	assert.Equal(t, uint64(2), upcoming[0].ID)
	assert.Equal(t, uint64(1), upcoming[1].ID)
}

func TestRankPendingInvites_PendingOnlyNewestFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	invites := []dto.InviteDTO{
		{ID: 1, Status: models.InviteStatusPending, CreatedAt: base},
		{ID: 2, Status: models.InviteStatusAccepted, CreatedAt: base.Add(time.Hour)},
		{ID: 3, Status: models.InviteStatusPending, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, Status: models.InviteStatusDeclined, CreatedAt: base.Add(3 * time.Hour)},
	}

	ranked := RankPendingInvites(invites)

	assert.Len(t, ranked, 2)
	assert.Equal(t, uint64(3), ranked[0].ID)
	assert.Equal(t, uint64(1), ranked[1].ID)
}

func TestProjectProgress_DerivedFromTaskSet(t *testing.T) {
	tasks := []dto.TaskDTO{
		taskWithStatus(1, models.TaskStatusDone),
		taskWithStatus(2, models.TaskStatusDone),
		taskWithStatus(3, models.TaskStatusTodo),
		taskWithStatus(4, models.TaskStatusInProgress),
	}

	percent, derivable := ProjectProgress(tasks)

	assert.True(t, derivable)
	assert.Equal(t, 50, percent)
}

func TestProjectProgress_NotDerivableWithoutTasks(t *testing.T) {
	percent, derivable := ProjectProgress(nil)

	assert.False(t, derivable)
	assert.Equal(t, 0, percent)
}

func TestPipelineValue_ExcludesArchived(t *testing.T) {
	leads := []dto.LeadDTO{
		{ID: 1, Stage: models.LeadStageNew, Value: 100},
		{ID: 2, Stage: models.LeadStageNew, Value: 50},
		{ID: 3, Stage: models.LeadStageWon, Value: 900},
		{ID: 4, Stage: models.LeadStageNew, Value: 25, Archived: true},
	}

	totals := PipelineValue(leads)

	assert.Equal(t, 150.0, totals[models.LeadStageNew])
	assert.Equal(t, 900.0, totals[models.LeadStageWon])
}
