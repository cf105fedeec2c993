package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Samuel04-png/aether-api/internal/constants"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
)

var (
	ErrQuestionRequired = errors.New("question is required")
	ErrQuestionTooLong  = errors.New("question is too long")
	ErrCopilotDisabled  = errors.New("copilot is not configured")
)

// CopilotService answers questions about the user's workspace and extracts
// actionable tasks from free-form text, both via the OpenAI chat API.
type CopilotService struct {
	client      *openai.Client
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	leadRepo    repository.LeadRepository
}

// GeneratedTask is one task extracted from free-form text.
type GeneratedTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
}

// NewCopilotService creates a CopilotService. An empty apiKey leaves the
// client nil and every call returns ErrCopilotDisabled.
func NewCopilotService(apiKey string, taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, leadRepo repository.LeadRepository) *CopilotService {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &CopilotService{
		client:      client,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		leadRepo:    leadRepo,
	}
}

// Ask answers a question grounded in a compact summary of the user's current
// workspace: task counts, active projects and the sales pipeline.
func (s *CopilotService) Ask(ctx context.Context, ownerID uint64, question string) (string, error) {
	if s.client == nil {
		return "", ErrCopilotDisabled
	}
	if ownerID == 0 {
		return "", ErrNoScopingID
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrQuestionRequired
	}
	if len(question) > constants.MaxCopilotQuestionLen {
		return "", ErrQuestionTooLong
	}

	summary, err := s.workspaceSummary(ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to build workspace summary: %w", err)
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleSystem,
					Content: "You are a business copilot embedded in a workspace app. " +
						"Answer concisely using only the workspace summary provided. " +
						"If the summary does not contain the answer, say so.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Workspace summary:\n%s\n\nQuestion: %s", summary, question),
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// GenerateTasksFromText analyzes text and extracts tasks using OpenAI GPT.
func (s *CopilotService) GenerateTasksFromText(ctx context.Context, text string) ([]GeneratedTask, error) {
	if s.client == nil {
		return nil, ErrCopilotDisabled
	}

	currentTime := time.Now().Format("2006-01-02 15:04:05")
	prompt := fmt.Sprintf(`You are a task extraction assistant. Extract concrete tasks from the text below.

Current time: %s

Text:
%s

Return a JSON array of extracted tasks in this shape:
[
  {
    "title": "short task title",
    "description": "task details",
    "due_date": "deadline in ISO8601, e.g. 2026-10-28T23:59:59Z, or null when no deadline is stated"
  }
]

Rules:
- Return an empty array [] when there are no tasks
- Resolve relative deadlines ("tomorrow", "next week") to concrete datetimes
- due_date must be an ISO8601 string or null
- Return only the JSON, no prose`, currentTime, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4o,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content

	var tasks []GeneratedTask
	if err := json.Unmarshal([]byte(content), &tasks); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w (response: %s)", err, content)
	}

	if len(tasks) > constants.MaxAIGeneratedTasks {
		tasks = tasks[:constants.MaxAIGeneratedTasks]
	}

	return tasks, nil
}

func (s *CopilotService) workspaceSummary(ownerID uint64) (string, error) {
	tasks, _, err := s.taskRepo.List(repository.TaskFilter{OwnerID: ownerID})
	if err != nil {
		return "", err
	}
	open, done := 0, 0
	overdue := 0
	now := time.Now()
	for _, task := range tasks {
		if task.Status == models.TaskStatusDone {
			done++
			continue
		}
		open++
		if task.DueDate != nil && task.DueDate.Before(now) {
			overdue++
		}
	}

	projects, err := s.projectRepo.ListByOwner(ownerID)
	if err != nil {
		return "", err
	}

	leads, err := s.leadRepo.ListByOwner(ownerID, false)
	if err != nil {
		return "", err
	}
	pipeline := 0.0
	for _, lead := range leads {
		pipeline += lead.Value
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tasks: %d open (%d overdue), %d done.\n", open, overdue, done)
	fmt.Fprintf(&b, "Projects (%d):\n", len(projects))
	for _, project := range projects {
		fmt.Fprintf(&b, "- %s [%s] %d%% complete\n", project.Name, project.Status, project.Progress)
	}
	fmt.Fprintf(&b, "Pipeline: %d active leads worth %.2f.\n", len(leads), pipeline)

	return b.String(), nil
}
