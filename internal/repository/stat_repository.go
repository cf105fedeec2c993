package repository

import (
	"github.com/Samuel04-png/aether-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStatRepository is a GORM implementation of StatRepository
type GormStatRepository struct {
	db *gorm.DB
}

// NewStatRepository creates a new StatRepository
func NewStatRepository(db *gorm.DB) StatRepository {
	return &GormStatRepository{db: db}
}

func (r *GormStatRepository) ListByOwner(ownerID uint64) ([]models.DashboardStat, error) {
	var stats []models.DashboardStat
	if err := r.db.Where("owner_id = ?", ownerID).
		Order("label ASC").
		Find(&stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// Upsert writes one KPI row keyed by owner, label and period
func (r *GormStatRepository) Upsert(stat *models.DashboardStat) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "label"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(stat).Error
}
