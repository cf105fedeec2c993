package repository

import (
	"github.com/Samuel04-png/aether-api/internal/models"
	"gorm.io/gorm"
)

// GormInviteRepository is a GORM implementation of InviteRepository
type GormInviteRepository struct {
	db *gorm.DB
}

// NewInviteRepository creates a new InviteRepository
func NewInviteRepository(db *gorm.DB) InviteRepository {
	return &GormInviteRepository{db: db}
}

func (r *GormInviteRepository) Create(invite *models.ProjectInvite) error {
	return r.db.Create(invite).Error
}

func (r *GormInviteRepository) FindByID(id uint64, preload ...string) (*models.ProjectInvite, error) {
	var invite models.ProjectInvite
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&invite, id).Error; err != nil {
		return nil, err
	}

	return &invite, nil
}

func (r *GormInviteRepository) ListByInvitee(inviteeID uint64) ([]models.ProjectInvite, error) {
	var invites []models.ProjectInvite
	if err := r.db.Preload("Project").Preload("Inviter").
		Where("invitee_id = ?", inviteeID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *GormInviteRepository) ListByInviter(inviterID uint64) ([]models.ProjectInvite, error) {
	var invites []models.ProjectInvite
	if err := r.db.Preload("Project").Preload("Invitee").
		Where("inviter_id = ?", inviterID).
		Order("created_at DESC").
		Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *GormInviteRepository) FindPending(projectID, inviteeID uint64) (*models.ProjectInvite, error) {
	var invite models.ProjectInvite
	if err := r.db.Where("project_id = ? AND invitee_id = ? AND status = ?",
		projectID, inviteeID, models.InviteStatusPending).
		First(&invite).Error; err != nil {
		return nil, err
	}
	return &invite, nil
}

// UpdateStatus transitions an invite; invites are never deleted.
func (r *GormInviteRepository) UpdateStatus(id uint64, status models.InviteStatus) error {
	return r.db.Model(&models.ProjectInvite{}).
		Where("id = ?", id).
		Update("status", status).Error
}
