package constants

// Context and session keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyTask    = "task"
	ContextKeyProject = "project"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
	SessionName       = "aether_session"
)

// Upcoming-deadline window used by the dashboard derivations
const UpcomingDeadlineDays = 7

// AI copilot limits
const (
	MaxAIGeneratedTasks   = 20
	MaxCopilotQuestionLen = 2000
)
