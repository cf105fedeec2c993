package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Samuel04-png/aether-api/internal/constants"
	"github.com/Samuel04-png/aether-api/internal/database"
	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"github.com/Samuel04-png/aether-api/internal/services"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	feed        *live.Feed
	handler     *TaskHandler
	taskService *services.TaskService
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TeamMember{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	log := logger.New("test")
	suite.feed = live.NewFeed()

	taskRepo := repository.NewTaskRepository(suite.db)
	projectRepo := repository.NewProjectRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	suite.taskService = services.NewTaskService(taskRepo, projectRepo, teamRepo, suite.feed, log)
	suite.handler = NewTaskHandler(suite.taskService, nil)
}

func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data

func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashed",
		DisplayName:  "Test User",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestMember(ownerID uint64, name string) *models.TeamMember {
	member := &models.TeamMember{
		OwnerID: ownerID,
		Name:    name,
		Status:  models.MembershipAccepted,
	}
	suite.db.Create(member)
	return member
}

func (suite *TaskHandlerTestSuite) createTestProject(ownerID uint64, name string) *models.Project {
	project := &models.Project{
		OwnerID: ownerID,
		Name:    name,
		Status:  models.ProjectStatusActive,
	}
	suite.db.Create(project)
	return project
}

func (suite *TaskHandlerTestSuite) createTestTask(title string, ownerID uint64) *models.Task {
	task := &models.Task{
		OwnerID: ownerID,
		Title:   title,
		Status:  models.TaskStatusTodo,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create authenticated context
func (suite *TaskHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

// Helper function to set task context (simulates RequireTaskAccess middleware)
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, task models.Task) {
	c.Set(constants.ContextKeyTask, task)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Test Task", user.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, user.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Contains(suite.T(), response, "tasks")
	assert.Contains(suite.T(), response, "pagination")

	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)

	firstTask := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), task.Title, firstTask["title"])
}

func (suite *TaskHandlerTestSuite) TestListTasks_ScopedToOwner() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	suite.createTestTask("Mine", owner.ID)
	suite.createTestTask("Theirs", other.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks", nil, owner.ID)

	suite.handler.ListTasks(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	tasks := response["tasks"].([]interface{})
	assert.Len(suite.T(), tasks, 1)
	assert.Equal(suite.T(), "Mine", tasks[0].(map[string]interface{})["title"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("test@example.com")

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"description": "Details",
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "New Task", response["title"])
	assert.Equal(suite.T(), string(models.TaskStatusTodo), response["status"])
}

func (suite *TaskHandlerTestSuite) TestCreateTask_PublishesFeedSignal() {
	user := suite.createTestUser("test@example.com")

	signals, cancel := suite.feed.Subscribe(live.UserTasks(user.ID))
	defer cancel()

	body, _ := json.Marshal(map[string]interface{}{"title": "New Task"})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	select {
	case <-signals:
	default:
		suite.T().Fatal("expected a change signal on the tasks path")
	}
}

func (suite *TaskHandlerTestSuite) TestCreateTask_UnknownAssignee() {
	user := suite.createTestUser("test@example.com")

	assigneeID := uint64(999)
	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"assignee_id": assigneeID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, user.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeFromAnotherWorkspace() {
	owner := suite.createTestUser("owner@example.com")
	other := suite.createTestUser("other@example.com")
	foreign := suite.createTestMember(other.ID, "Foreign Member")

	body, _ := json.Marshal(map[string]interface{}{
		"title":       "New Task",
		"assignee_id": foreign.ID,
	})
	c, w := suite.createAuthContext("POST", "/api/tasks", body, owner.ID)

	suite.handler.CreateTask(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestSetTaskStatus_DoneStampsCompletion() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Finish me", user.ID)

	body, _ := json.Marshal(map[string]string{"status": "done"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1/status", body, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.SetTaskStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusDone, stored.Status)
	suite.Require().NotNil(stored.CompletedAt)
	firstStamp := *stored.CompletedAt

	// Completing an already-done task keeps the original stamp.
	c2, w2 := suite.createAuthContext("PUT", "/api/tasks/1/status", body, user.ID)
	suite.setTaskContext(c2, stored)
	suite.handler.SetTaskStatus(c2)

	assert.Equal(suite.T(), http.StatusOK, w2.Code)
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	suite.Require().NotNil(stored.CompletedAt)
	assert.WithinDuration(suite.T(), firstStamp, *stored.CompletedAt, time.Millisecond)
}

func (suite *TaskHandlerTestSuite) TestSetTaskStatus_ReopenClearsCompletion() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Reopen me", user.ID)

	done, err := suite.taskService.SetTaskStatus(context.Background(), task.ID, user.ID, models.TaskStatusDone)
	suite.Require().NoError(err)
	suite.Require().NotNil(done.CompletedAt)

	body, _ := json.Marshal(map[string]string{"status": "in_progress"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1/status", body, user.ID)
	suite.setTaskContext(c, *done)

	suite.handler.SetTaskStatus(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, task.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusInProgress, stored.Status)
	assert.Nil(suite.T(), stored.CompletedAt)
}

func (suite *TaskHandlerTestSuite) TestSetTaskStatus_InvalidStage() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Task", user.ID)

	body, _ := json.Marshal(map[string]string{"status": "blocked"})
	c, w := suite.createAuthContext("PUT", "/api/tasks/1/status", body, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.SetTaskStatus(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TaskHandlerTestSuite) TestSetTaskStatus_RecomputesProjectProgress() {
	user := suite.createTestUser("test@example.com")
	project := suite.createTestProject(user.ID, "Launch")

	first := &models.Task{OwnerID: user.ID, Title: "A", Status: models.TaskStatusTodo, ProjectID: &project.ID}
	second := &models.Task{OwnerID: user.ID, Title: "B", Status: models.TaskStatusTodo, ProjectID: &project.ID}
	suite.db.Create(first)
	suite.db.Create(second)

	_, err := suite.taskService.SetTaskStatus(context.Background(), first.ID, user.ID, models.TaskStatusDone)
	suite.Require().NoError(err)

	var stored models.Project
	suite.Require().NoError(suite.db.First(&stored, project.ID).Error)
	assert.Equal(suite.T(), 50, stored.Progress)

	_, err = suite.taskService.SetTaskStatus(context.Background(), second.ID, user.ID, models.TaskStatusDone)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.First(&stored, project.ID).Error)
	assert.Equal(suite.T(), 100, stored.Progress)
}

func (suite *TaskHandlerTestSuite) TestGetBoard_PartitionsAllTasks() {
	user := suite.createTestUser("test@example.com")
	suite.createTestTask("Todo Task", user.ID)

	doing := &models.Task{OwnerID: user.ID, Title: "Doing", Status: models.TaskStatusInProgress}
	suite.db.Create(doing)
	finished := &models.Task{OwnerID: user.ID, Title: "Finished", Status: models.TaskStatusDone}
	suite.db.Create(finished)

	c, w := suite.createAuthContext("GET", "/api/tasks/board", nil, user.ID)

	suite.handler.GetBoard(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var board map[string][]map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &board))
	assert.Len(suite.T(), board["todo"], 1)
	assert.Len(suite.T(), board["in_progress"], 1)
	assert.Len(suite.T(), board["done"], 1)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask_SoftDeletes() {
	user := suite.createTestUser("test@example.com")
	task := suite.createTestTask("Delete me", user.ID)

	c, w := suite.createAuthContext("DELETE", "/api/tasks/1", nil, user.ID)
	suite.setTaskContext(c, *task)

	suite.handler.DeleteTask(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	suite.db.Unscoped().Model(&models.Task{}).Where("id = ?", task.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
