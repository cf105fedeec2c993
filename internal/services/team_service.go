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
	ErrMemberNotFound     = errors.New("team member not found")
	ErrNotMemberOwner     = errors.New("team member belongs to another workspace")
	ErrMemberNameRequired = errors.New("member name is required")
)

// TeamService is the mutation facade for workspace team members.
type TeamService struct {
	teamRepo repository.TeamRepository
	feed     *live.Feed
	log      *logger.Logger
}

// NewTeamService creates a new TeamService
func NewTeamService(teamRepo repository.TeamRepository, feed *live.Feed, log *logger.Logger) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		feed:     feed,
		log:      log,
	}
}

// AddMemberInput represents input for adding a team member
type AddMemberInput struct {
	Name      string
	Role      string
	AvatarURL string
	Email     string
	Status    models.MembershipStatus
}

// UpdateMemberInput represents input for updating a team member
type UpdateMemberInput struct {
	Name      *string
	Role      *string
	AvatarURL *string
	Email     *string
	Status    *models.MembershipStatus
}

// ListMembers returns the owner's team. Absent owner yields empty.
func (s *TeamService) ListMembers(ownerID uint64) ([]models.TeamMember, error) {
	if ownerID == 0 {
		return []models.TeamMember{}, nil
	}

	members, err := s.teamRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

// AddMember adds a team member to the owner's workspace.
func (s *TeamService) AddMember(ctx context.Context, ownerID uint64, input AddMemberInput) (*models.TeamMember, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if input.Name == "" {
		return nil, ErrMemberNameRequired
	}

	if input.Status == "" {
		input.Status = models.MembershipAccepted
	}

	member := &models.TeamMember{
		OwnerID:   ownerID,
		Name:      input.Name,
		Role:      input.Role,
		AvatarURL: input.AvatarURL,
		Email:     input.Email,
		Status:    input.Status,
	}

	if err := writeThrough(ctx, "team_member", func() error { return s.teamRepo.Create(member) }); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	s.feed.Publish(live.UserTeam(ownerID))

	return member, nil
}

// UpdateMember updates a team member's fields.
func (s *TeamService) UpdateMember(ctx context.Context, memberID, ownerID uint64, input UpdateMemberInput) (*models.TeamMember, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}

	member, err := s.getOwned(memberID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrMemberNameRequired
		}
		member.Name = *input.Name
	}
	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.AvatarURL != nil {
		member.AvatarURL = *input.AvatarURL
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Status != nil {
		member.Status = *input.Status
	}

	if err := writeThrough(ctx, "team_member", func() error { return s.teamRepo.Update(member) }); err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	s.feed.Publish(live.UserTeam(ownerID))

	return member, nil
}

// RemoveMember soft deletes a team member and unassigns their open tasks.
func (s *TeamService) RemoveMember(ctx context.Context, memberID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	if _, err := s.getOwned(memberID, ownerID); err != nil {
		return err
	}

	if err := writeThrough(ctx, "team_member", func() error { return s.teamRepo.Delete(memberID) }); err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	s.feed.Publish(live.UserTeam(ownerID))
	s.feed.Publish(live.UserTasks(ownerID))

	return nil
}

func (s *TeamService) getOwned(memberID, ownerID uint64) (*models.TeamMember, error) {
	member, err := s.teamRepo.FindByID(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	if member.OwnerID != ownerID {
		return nil, ErrNotMemberOwner
	}
	return member, nil
}
