package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Samuel04-png/aether-api/internal/live"
	"github.com/Samuel04-png/aether-api/internal/logger"
	"github.com/Samuel04-png/aether-api/internal/models"
	"github.com/Samuel04-png/aether-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrNotLeadOwner     = errors.New("lead belongs to another workspace")
	ErrLeadNameRequired = errors.New("lead name is required")
	ErrInvalidLeadStage = errors.New("invalid lead stage")
	ErrNegativeValue    = errors.New("lead value cannot be negative")
)

// LeadService is the mutation facade for the sales pipeline. Leads are
// archived in place, never deleted, so won/lost history survives.
type LeadService struct {
	leadRepo repository.LeadRepository
	feed     *live.Feed
	log      *logger.Logger
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo repository.LeadRepository, feed *live.Feed, log *logger.Logger) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		feed:     feed,
		log:      log,
	}
}

// CreateLeadInput represents input for creating a lead
type CreateLeadInput struct {
	Name    string
	Company string
	Email   string
	Stage   models.LeadStage
	Value   float64
	Notes   string
}

// UpdateLeadInput represents input for updating a lead
type UpdateLeadInput struct {
	Name    *string
	Company *string
	Email   *string
	Stage   *models.LeadStage
	Value   *float64
	Notes   *string
}

// ListLeads returns the owner's leads. Archived leads are included only when
// requested; the default pipeline view hides them.
func (s *LeadService) ListLeads(ownerID uint64, includeArchived bool) ([]models.Lead, error) {
	if ownerID == 0 {
		return []models.Lead{}, nil
	}

	leads, err := s.leadRepo.ListByOwner(ownerID, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return leads, nil
}

// CreateLead adds a lead to the owner's pipeline.
func (s *LeadService) CreateLead(ctx context.Context, ownerID uint64, input CreateLeadInput) (*models.Lead, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}
	if input.Name == "" {
		return nil, ErrLeadNameRequired
	}
	if input.Value < 0 {
		return nil, ErrNegativeValue
	}
	if input.Stage == "" {
		input.Stage = models.LeadStageNew
	}
	if !input.Stage.Valid() {
		return nil, ErrInvalidLeadStage
	}

	lead := &models.Lead{
		OwnerID: ownerID,
		Name:    input.Name,
		Company: input.Company,
		Email:   input.Email,
		Stage:   input.Stage,
		Value:   input.Value,
		Notes:   input.Notes,
	}

	if err := writeThrough(ctx, "lead", func() error { return s.leadRepo.Create(lead) }); err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	s.feed.Publish(live.UserLeads(ownerID))

	return lead, nil
}

// UpdateLead updates a lead's fields, including stage moves on the pipeline
// board.
func (s *LeadService) UpdateLead(ctx context.Context, leadID, ownerID uint64, input UpdateLeadInput) (*models.Lead, error) {
	if ownerID == 0 {
		return nil, ErrNoScopingID
	}

	lead, err := s.getOwned(leadID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if *input.Name == "" {
			return nil, ErrLeadNameRequired
		}
		lead.Name = *input.Name
	}
	if input.Company != nil {
		lead.Company = *input.Company
	}
	if input.Email != nil {
		lead.Email = *input.Email
	}
	if input.Stage != nil {
		if !input.Stage.Valid() {
			return nil, ErrInvalidLeadStage
		}
		lead.Stage = *input.Stage
	}
	if input.Value != nil {
		if *input.Value < 0 {
			return nil, ErrNegativeValue
		}
		lead.Value = *input.Value
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}

	if err := writeThrough(ctx, "lead", func() error { return s.leadRepo.Update(lead) }); err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.feed.Publish(live.UserLeads(ownerID))

	return lead, nil
}

// ArchiveLead marks a lead archived in place. Already-archived is a no-op.
func (s *LeadService) ArchiveLead(ctx context.Context, leadID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	lead, err := s.getOwned(leadID, ownerID)
	if err != nil {
		return err
	}
	if lead.ArchivedAt != nil {
		return nil
	}

	if err := writeThrough(ctx, "lead", func() error {
		return s.leadRepo.Archive(leadID, time.Now().UTC())
	}); err != nil {
		return fmt.Errorf("failed to archive lead: %w", err)
	}

	s.feed.Publish(live.UserLeads(ownerID))

	return nil
}

// UnarchiveLead restores an archived lead to the pipeline.
func (s *LeadService) UnarchiveLead(ctx context.Context, leadID, ownerID uint64) error {
	if ownerID == 0 {
		return ErrNoScopingID
	}

	if _, err := s.getOwned(leadID, ownerID); err != nil {
		return err
	}

	if err := writeThrough(ctx, "lead", func() error { return s.leadRepo.Unarchive(leadID) }); err != nil {
		return fmt.Errorf("failed to unarchive lead: %w", err)
	}

	s.feed.Publish(live.UserLeads(ownerID))

	return nil
}

func (s *LeadService) getOwned(leadID, ownerID uint64) (*models.Lead, error) {
	lead, err := s.leadRepo.FindByID(leadID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("failed to find lead: %w", err)
	}
	if lead.OwnerID != ownerID {
		return nil, ErrNotLeadOwner
	}
	return lead, nil
}
