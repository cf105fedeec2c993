package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Samuel04-png/aether-api/internal/models"
)

func TestToTaskDTO_CoercesUnknownStatus(t *testing.T) {
	task := models.Task{ID: 1, Title: "t", Status: models.TaskStatus("blocked")}

	out := ToTaskDTO(task)

	assert.Equal(t, models.TaskStatusTodo, out.Status)
}

func TestToTaskDTO_EmptyStatusDefaultsToTodo(t *testing.T) {
	out := ToTaskDTO(models.Task{ID: 1, Title: "t"})

	assert.Equal(t, models.TaskStatusTodo, out.Status)
}

func TestToTaskDTOs_EmptySliceNotNil(t *testing.T) {
	out := ToTaskDTOs(nil)

	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestToUserDTO_FallsBackToUnknownUser(t *testing.T) {
	out := ToUserDTO(models.User{ID: 1, Email: "a@b.c"})

	assert.Equal(t, UnknownUserName, out.DisplayName)
}

func TestToChatMessageDTOs_DropsSenderlessMessages(t *testing.T) {
	messages := []models.ChatMessage{
		{ID: 1, ChannelID: 7, SenderID: 0, Body: "ghost"},
		{ID: 2, ChannelID: 7, SenderID: 3, Body: "hello",
			Sender: models.User{ID: 3, DisplayName: "Ada"}},
	}

	out := ToChatMessageDTOs(messages)

	assert.Len(t, out, 1)
	assert.Equal(t, uint64(2), out[0].ID)
	assert.Equal(t, "Ada", out[0].SenderName)
}

func TestToChatMessageDTOs_UnloadedSenderGetsPlaceholder(t *testing.T) {
	messages := []models.ChatMessage{
		{ID: 1, ChannelID: 7, SenderID: 3, Body: "hello"},
	}

	out := ToChatMessageDTOs(messages)

	assert.Len(t, out, 1)
	assert.Equal(t, UnknownUserName, out[0].SenderName)
}

func TestToProjectDTO_EmbeddedCollectionsNeverNil(t *testing.T) {
	out := ToProjectDTO(models.Project{ID: 1, Name: "p"})

	assert.NotNil(t, out.Tasks)
	assert.NotNil(t, out.Members)
	assert.NotNil(t, out.Files)
	assert.NotNil(t, out.Messages)
}

func TestToProjectDTO_ClampsProgress(t *testing.T) {
	over := ToProjectDTO(models.Project{ID: 1, Name: "p", Progress: 140})
	under := ToProjectDTO(models.Project{ID: 2, Name: "q", Progress: -3})

	assert.Equal(t, 100, over.Progress)
	assert.Equal(t, 0, under.Progress)
}

func TestToNotificationDTO_UnknownCategoryBecomesSystem(t *testing.T) {
	out := ToNotificationDTO(models.Notification{
		ID:       1,
		Category: models.NotificationCategory("billing"),
	})

	assert.Equal(t, models.NotificationCategorySystem, out.Category)
}

func TestToLeadDTO_ArchivedFlagFollowsTimestamp(t *testing.T) {
	at := time.Now()

	active := ToLeadDTO(models.Lead{ID: 1, Name: "a"})
	archived := ToLeadDTO(models.Lead{ID: 2, Name: "b", ArchivedAt: &at})

	assert.False(t, active.Archived)
	assert.True(t, archived.Archived)
}
