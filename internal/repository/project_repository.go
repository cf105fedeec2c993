package repository

import (
	"github.com/Samuel04-png/aether-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByOwner lists an owner's projects with tasks and members preloaded
func (r *GormProjectRepository) ListByOwner(ownerID uint64) ([]models.Project, error) {
	var projects []models.Project
	if err := r.db.Where("owner_id = ?", ownerID).
		Preload("Tasks").
		Preload("Members").
		Order("created_at DESC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// UpdateProgress writes only the stored progress column
func (r *GormProjectRepository) UpdateProgress(id uint64, progress int) error {
	return r.db.Model(&models.Project{}).
		Where("id = ?", id).
		Update("progress", progress).Error
}

// Delete soft deletes a project and detaches its tasks
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddMember attaches a team member to a project
func (r *GormProjectRepository) AddMember(projectID, memberID uint64) error {
	return r.db.Model(&models.Project{ID: projectID}).
		Association("Members").
		Append(&models.TeamMember{ID: memberID})
}

// AddFile records an uploaded project file
func (r *GormProjectRepository) AddFile(file *models.ProjectFile) error {
	return r.db.Create(file).Error
}

// AddMessage appends a message to the project discussion
func (r *GormProjectRepository) AddMessage(message *models.ProjectMessage) error {
	return r.db.Create(message).Error
}
