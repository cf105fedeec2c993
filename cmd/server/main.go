package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/Samuel04-png/aether-api/internal/config"
	"github.com/Samuel04-png/aether-api/internal/constants"
	"github.com/Samuel04-png/aether-api/internal/database"
	"github.com/Samuel04-png/aether-api/internal/handlers"
	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/metrics"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"github.com/Samuel04-png/aether-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	appLog := logger.New("aether-api")
	defer appLog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()

	// Repositories
	taskRepo := repository.NewTaskRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	channelRepo := repository.NewChannelRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	statRepo := repository.NewStatRepository(db)
	userRepo := repository.NewUserRepository(db)

	// The change feed every mutation facade publishes into
	feed := live.NewFeed()

	// Services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, teamRepo, feed, appLog)
	projectService := services.NewProjectService(projectRepo, taskRepo, teamRepo, feed, appLog)
	teamService := services.NewTeamService(teamRepo, feed, appLog)
	chatService := services.NewChatService(channelRepo, feed, appLog)
	notificationService := services.NewNotificationService(notificationRepo, feed, appLog)
	inviteService := services.NewInviteService(inviteRepo, projectRepo, teamRepo, userRepo, notificationService, feed, appLog)
	leadService := services.NewLeadService(leadRepo, feed, appLog)
	dashboardService := services.NewDashboardService(statRepo, taskRepo, projectRepo, teamRepo, leadRepo, feed, appLog)
	copilotService := services.NewCopilotService(cfg.OpenAIAPIKey, taskRepo, projectRepo, leadRepo)

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionName, store))

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService, copilotService)
	projectHandler := handlers.NewProjectHandler(projectService)
	teamHandler := handlers.NewTeamHandler(teamService)
	chatHandler := handlers.NewChatHandler(chatService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	leadHandler := handlers.NewLeadHandler(leadService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	copilotHandler := handlers.NewCopilotHandler(copilotService)
	liveHandler := handlers.NewLiveHandler(feed, appLog,
		taskService, projectService, teamService, chatService,
		notificationService, inviteService, leadService, dashboardService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Aether API is running",
		})
	})

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Live snapshot subscriptions
	r.GET("/ws", middleware.RequireAuth(), liveHandler.Serve)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/board", taskHandler.GetBoard)
			tasks.GET("/deadlines", taskHandler.GetUpcomingDeadlines)
			tasks.POST("", taskHandler.CreateTask)
			tasks.POST("/generate", taskHandler.GenerateTasks)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTaskAccess(), taskHandler.UpdateTask)
			tasks.PUT("/:id/status", middleware.RequireTaskAccess(), taskHandler.SetTaskStatus)
			tasks.DELETE("/:id", middleware.RequireTaskAccess(), taskHandler.DeleteTask)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", middleware.RequireProjectAccess(), projectHandler.GetProject)
			projects.PATCH("/:id", middleware.RequireProjectAccess(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectAccess(), projectHandler.DeleteProject)
			projects.POST("/:id/members", middleware.RequireProjectAccess(), projectHandler.AddMember)
			projects.POST("/:id/files", middleware.RequireProjectAccess(), projectHandler.AttachFile)
			projects.POST("/:id/messages", middleware.RequireProjectAccess(), projectHandler.PostMessage)
		}

		// Team routes (protected)
		team := api.Group("/team")
		team.Use(middleware.RequireAuth())
		{
			team.GET("", teamHandler.ListMembers)
			team.POST("", teamHandler.AddMember)
			team.PATCH("/:id", teamHandler.UpdateMember)
			team.DELETE("/:id", teamHandler.RemoveMember)
		}

		// Channel and message routes (protected)
		channels := api.Group("/channels")
		channels.Use(middleware.RequireAuth())
		{
			channels.GET("", chatHandler.ListChannels)
			channels.POST("", chatHandler.CreateChannel)
			channels.POST("/:id/join", chatHandler.JoinChannel)
			channels.POST("/:id/leave", chatHandler.LeaveChannel)
			channels.GET("/:id/messages", chatHandler.ListMessages)
			channels.POST("/:id/messages", chatHandler.SendMessage)
		}

		// Notification routes (protected)
		notifications := api.Group("/notifications")
		notifications.Use(middleware.RequireAuth())
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Dismiss)
		}

		// Invite routes (protected)
		invites := api.Group("/invites")
		invites.Use(middleware.RequireAuth())
		{
			invites.GET("", inviteHandler.ListInvites)
			invites.POST("", inviteHandler.SendInvite)
			invites.POST("/:id/accept", inviteHandler.AcceptInvite)
			invites.POST("/:id/decline", inviteHandler.DeclineInvite)
		}

		// Lead routes (protected)
		leads := api.Group("/leads")
		leads.Use(middleware.RequireAuth())
		{
			leads.GET("", leadHandler.ListLeads)
			leads.POST("", leadHandler.CreateLead)
			leads.PATCH("/:id", leadHandler.UpdateLead)
			leads.POST("/:id/archive", leadHandler.ArchiveLead)
			leads.POST("/:id/unarchive", leadHandler.UnarchiveLead)
		}

		// Dashboard routes (protected)
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth())
		{
			dashboard.GET("/stats", dashboardHandler.ListStats)
			dashboard.POST("/stats/recompute", dashboardHandler.RecomputeStats)
		}

		// Copilot routes (protected)
		copilot := api.Group("/copilot")
		copilot.Use(middleware.RequireAuth())
		{
			copilot.POST("/ask", copilotHandler.Ask)
		}
	}

	// Start server
	appLog.Info("server starting", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
