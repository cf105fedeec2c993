package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/Samuel04-png/aether-api/internal/database"
	"github.com/Samuel04-png/aether-api/internal/models"
)

// GormLeadRepository is a GORM implementation of LeadRepository
type GormLeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new LeadRepository
func NewLeadRepository(db *gorm.DB) LeadRepository {
	return &GormLeadRepository{db: db}
}

func (r *GormLeadRepository) Create(lead *models.Lead) error {
	return r.db.Create(lead).Error
}

func (r *GormLeadRepository) FindByID(id uint64) (*models.Lead, error) {
	var lead models.Lead
	if err := r.db.First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *GormLeadRepository) ListByOwner(ownerID uint64, includeArchived bool) ([]models.Lead, error) {
	var leads []models.Lead
	query := r.db.Scopes(database.OwnedBy(ownerID))
	if !includeArchived {
		query = query.Where("archived_at IS NULL")
	}
	if err := query.Order("created_at DESC").Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

func (r *GormLeadRepository) Update(lead *models.Lead) error {
	return r.db.Save(lead).Error
}

// Archive marks a lead archived in place; leads are never hard-deleted.
func (r *GormLeadRepository) Archive(id uint64, at time.Time) error {
	return r.db.Model(&models.Lead{}).
		Where("id = ?", id).
		Update("archived_at", at).Error
}

func (r *GormLeadRepository) Unarchive(id uint64) error {
	return r.db.Model(&models.Lead{}).
		Where("id = ?", id).
		Update("archived_at", nil).Error
}
