package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInviteNotFound     = errors.New("invite not found")
	ErrNotInvitee         = errors.New("invite addressed to another user")
	ErrInviteNotPending   = errors.New("invite already resolved")
	ErrDuplicateInvite    = errors.New("a pending invite for this user already exists")
	ErrInviteSelf         = errors.New("cannot invite yourself")
	ErrUnknownInvitee     = errors.New("invitee is not a registered user")
)

// InviteService is the mutation facade for project invites. Invites only ever
// transition status; resolved ones stay in the record.
type InviteService struct {
	inviteRepo    repository.InviteRepository
	projectRepo   repository.ProjectRepository
	teamRepo      repository.TeamRepository
	userRepo      repository.UserRepository
	notifications *NotificationService
	feed          *live.Feed
	log           *logger.Logger
}

// NewInviteService creates a new InviteService
func NewInviteService(inviteRepo repository.InviteRepository, projectRepo repository.ProjectRepository, teamRepo repository.TeamRepository, userRepo repository.UserRepository, notifications *NotificationService, feed *live.Feed, log *logger.Logger) *InviteService {
	return &InviteService{
		inviteRepo:    inviteRepo,
		projectRepo:   projectRepo,
		teamRepo:      teamRepo,
		userRepo:      userRepo,
		notifications: notifications,
		feed:          feed,
		log:           log,
	}
}

// SendInviteInput represents input for sending a project invite
type SendInviteInput struct {
	ProjectID uint64
	InviteeID uint64
	Role      string
	Message   string
}

// ListInvites returns invites addressed to the user plus invites the user
// sent, for the invites collection.
func (s *InviteService) ListInvites(userID uint64) ([]models.ProjectInvite, error) {
	if userID == 0 {
		return []models.ProjectInvite{}, nil
	}

	received, err := s.inviteRepo.ListByInvitee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list received invites: %w", err)
	}
	sent, err := s.inviteRepo.ListByInviter(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sent invites: %w", err)
	}
	return append(received, sent...), nil
}

// SendInvite invites a registered user to a project the inviter owns. At most
// one pending invite may exist per project and invitee.
func (s *InviteService) SendInvite(ctx context.Context, inviterID uint64, input SendInviteInput) (*models.ProjectInvite, error) {
	if inviterID == 0 {
		return nil, ErrNoScopingID
	}
	if input.InviteeID == inviterID {
		return nil, ErrInviteSelf
	}

	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OwnerID != inviterID {
		return nil, ErrNotProjectOwner
	}

	invitee, err := s.userRepo.FindByID(input.InviteeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownInvitee
		}
		return nil, fmt.Errorf("failed to find invitee: %w", err)
	}

	if _, err := s.inviteRepo.FindPending(input.ProjectID, input.InviteeID); err == nil {
		return nil, ErrDuplicateInvite
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check pending invite: %w", err)
	}

	invite := &models.ProjectInvite{
		ProjectID: input.ProjectID,
		InviterID: inviterID,
		InviteeID: input.InviteeID,
		Role:      input.Role,
		Status:    models.InviteStatusPending,
		Message:   input.Message,
	}

	if err := writeThrough(ctx, "invite", func() error { return s.inviteRepo.Create(invite) }); err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	s.feed.Publish(live.UserInvites(inviterID))
	s.feed.Publish(live.UserInvites(input.InviteeID))

	if err := s.notifications.Notify(ctx, invitee.ID, models.NotificationCategoryInvite,
		"Project invitation",
		fmt.Sprintf("You have been invited to join %s", project.Name),
		models.NotificationMeta{InviteID: &invite.ID, ProjectID: &project.ID},
	); err != nil {
		s.log.WithUser(invitee.ID).Error("invite notification failed", "invite_id", invite.ID, "error", err)
	}

	return invite, nil
}

// AcceptInvite resolves a pending invite: the invitee joins the project's
// workspace as a team member, the invite transitions to accepted, and the
// inviter is notified. Only the addressee may accept, and only once.
func (s *InviteService) AcceptInvite(ctx context.Context, inviteID, userID uint64) error {
	invite, err := s.resolvable(inviteID, userID)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.FindByID(invite.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to find project: %w", err)
	}

	invitee, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("failed to find invitee: %w", err)
	}

	member := &models.TeamMember{
		OwnerID: project.OwnerID,
		Name:    invitee.DisplayName,
		Role:    invite.Role,
		Email:   invitee.Email,
		Status:  models.MembershipAccepted,
	}

	if err := writeThrough(ctx, "invite", func() error {
		if err := s.teamRepo.Create(member); err != nil {
			return err
		}
		if err := s.projectRepo.AddMember(invite.ProjectID, member.ID); err != nil {
			return err
		}
		return s.inviteRepo.UpdateStatus(inviteID, models.InviteStatusAccepted)
	}); err != nil {
		return fmt.Errorf("failed to accept invite: %w", err)
	}

	s.feed.Publish(live.UserInvites(invite.InviterID))
	s.feed.Publish(live.UserInvites(userID))
	s.feed.Publish(live.UserTeam(project.OwnerID))
	s.feed.Publish(live.UserProjects(project.OwnerID))

	if err := s.notifications.Notify(ctx, invite.InviterID, models.NotificationCategoryInvite,
		"Invitation accepted",
		fmt.Sprintf("%s joined %s", invitee.DisplayName, project.Name),
		models.NotificationMeta{InviteID: &invite.ID, ProjectID: &project.ID},
	); err != nil {
		s.log.WithUser(invite.InviterID).Error("accept notification failed", "invite_id", invite.ID, "error", err)
	}

	return nil
}

// DeclineInvite resolves a pending invite as declined.
func (s *InviteService) DeclineInvite(ctx context.Context, inviteID, userID uint64) error {
	invite, err := s.resolvable(inviteID, userID)
	if err != nil {
		return err
	}

	if err := writeThrough(ctx, "invite", func() error {
		return s.inviteRepo.UpdateStatus(inviteID, models.InviteStatusDeclined)
	}); err != nil {
		return fmt.Errorf("failed to decline invite: %w", err)
	}

	s.feed.Publish(live.UserInvites(invite.InviterID))
	s.feed.Publish(live.UserInvites(userID))

	return nil
}

func (s *InviteService) resolvable(inviteID, userID uint64) (*models.ProjectInvite, error) {
	if userID == 0 {
		return nil, ErrNoScopingID
	}

	invite, err := s.inviteRepo.FindByID(inviteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invite: %w", err)
	}
	if invite.InviteeID != userID {
		return nil, ErrNotInvitee
	}
	if invite.Status != models.InviteStatusPending {
		return nil, ErrInviteNotPending
	}
	return invite, nil
}
