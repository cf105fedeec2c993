package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Samuel04-png/aether-api/internal/dto"
	apierrors "github.com/Samuel04-png/aether-api/internal/errors"
	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/middleware"
	"github.com/Samuel04-png/aether-api/internal/services"
	"github.com/Samuel04-png/aether-api/internal/views"
)

var errUnknownResource = errors.New("unknown resource")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Session cookie auth happens before the upgrade; cross-origin browsers
	// never get this far without a valid session.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LiveHandler upgrades websocket connections and resolves resource names
// into feed paths and snapshot loaders for the hub.
type LiveHandler struct {
	hub *live.Hub

	taskService         *services.TaskService
	projectService      *services.ProjectService
	teamService         *services.TeamService
	chatService         *services.ChatService
	notificationService *services.NotificationService
	inviteService       *services.InviteService
	leadService         *services.LeadService
	dashboardService    *services.DashboardService
}

// NewLiveHandler creates a LiveHandler and the hub it feeds.
func NewLiveHandler(
	feed *live.Feed,
	log *logger.Logger,
	taskService *services.TaskService,
	projectService *services.ProjectService,
	teamService *services.TeamService,
	chatService *services.ChatService,
	notificationService *services.NotificationService,
	inviteService *services.InviteService,
	leadService *services.LeadService,
	dashboardService *services.DashboardService,
) *LiveHandler {
	h := &LiveHandler{
		taskService:         taskService,
		projectService:      projectService,
		teamService:         teamService,
		chatService:         chatService,
		notificationService: notificationService,
		inviteService:       inviteService,
		leadService:         leadService,
		dashboardService:    dashboardService,
	}
	h.hub = live.NewHub(feed, h, log)
	return h
}

// Serve upgrades the request and hands the connection to the hub.
func (h *LiveHandler) Serve(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	h.hub.ServeClient(c.Request.Context(), conn, userID)
}

// Resolve maps a client resource name to its feed path and snapshot loader.
// Every loader returns the resource's full current state.
func (h *LiveHandler) Resolve(ctx context.Context, userID uint64, resource string) (string, func(context.Context) (interface{}, error), error) {
	switch resource {
	case "tasks":
		return live.UserTasks(userID), func(context.Context) (interface{}, error) {
			tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{OwnerID: userID})
			if err != nil {
				return nil, err
			}
			return dto.ToTaskDTOs(tasks), nil
		}, nil

	case "board":
		return live.UserTasks(userID), func(context.Context) (interface{}, error) {
			tasks, _, err := h.taskService.ListTasks(services.ListTasksInput{OwnerID: userID})
			if err != nil {
				return nil, err
			}
			return views.PartitionByStatus(dto.ToTaskDTOs(tasks)), nil
		}, nil

	case "projects":
		return live.UserProjects(userID), func(context.Context) (interface{}, error) {
			projects, err := h.projectService.ListProjects(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToProjectDTOs(projects), nil
		}, nil

	case "team":
		return live.UserTeam(userID), func(context.Context) (interface{}, error) {
			members, err := h.teamService.ListMembers(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToTeamMemberDTOs(members), nil
		}, nil

	case "notifications":
		return live.UserNotifications(userID), func(context.Context) (interface{}, error) {
			notifications, err := h.notificationService.ListNotifications(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToNotificationDTOs(notifications), nil
		}, nil

	case "invites":
		return live.UserInvites(userID), func(context.Context) (interface{}, error) {
			invites, err := h.inviteService.ListInvites(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToInviteDTOs(invites), nil
		}, nil

	case "leads":
		return live.UserLeads(userID), func(context.Context) (interface{}, error) {
			leads, err := h.leadService.ListLeads(userID, false)
			if err != nil {
				return nil, err
			}
			return dto.ToLeadDTOs(leads), nil
		}, nil

	case "stats":
		return live.UserStats(userID), func(context.Context) (interface{}, error) {
			stats, err := h.dashboardService.ListStats(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToDashboardStatDTOs(stats), nil
		}, nil

	case "channels":
		return live.Channels(), func(context.Context) (interface{}, error) {
			channels, err := h.chatService.ListChannels(userID)
			if err != nil {
				return nil, err
			}
			return dto.ToChannelDTOs(channels), nil
		}, nil
	}

	if id, ok := channelMessagesResource(resource); ok {
		// Membership gate runs once at subscribe time; ListMessages enforces
		// it again on every load.
		if _, err := h.chatService.ListMessages(id, userID); err != nil {
			return "", nil, err
		}
		return live.ChannelMessages(id), func(context.Context) (interface{}, error) {
			messages, err := h.chatService.ListMessages(id, userID)
			if err != nil {
				return nil, err
			}
			return dto.ToChatMessageDTOs(messages), nil
		}, nil
	}

	return "", nil, fmt.Errorf("%w: %s", errUnknownResource, resource)
}

func channelMessagesResource(resource string) (uint64, bool) {
	rest, ok := strings.CutPrefix(resource, "channels/")
	if !ok {
		return 0, false
	}
	idStr, ok := strings.CutSuffix(rest, "/messages")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
