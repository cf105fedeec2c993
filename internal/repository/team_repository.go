package repository

import (
	"github.com/Samuel04-png/aether-api/internal/models"
	"gorm.io/gorm"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

func (r *GormTeamRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *GormTeamRepository) FindByID(id uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *GormTeamRepository) ListByOwner(ownerID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *GormTeamRepository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Unassign the member from any open tasks first.
		if err := tx.Model(&models.Task{}).
			Where("assignee_id = ?", id).
			Update("assignee_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.TeamMember{}, id).Error
	})
}
