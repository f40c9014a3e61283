package repository

import (
	"github.com/keynertyc/Fullstack-Test-01/internal/database"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
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

// FindByID finds a project by ID with the owner preloaded
func (r *GormProjectRepository) FindByID(id uint64) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Owner").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// ListByUserID lists projects the user owns or collaborates on, newest first.
// A project reachable through both paths must appear once, hence the DISTINCT.
func (r *GormProjectRepository) ListByUserID(userID uint64, offset, limit int) ([]models.Project, int64, error) {
	base := r.db.Model(&models.Project{}).
		Joins("LEFT JOIN project_collaborators ON project_collaborators.project_id = projects.id").
		Where("projects.owner_id = ? OR project_collaborators.user_id = ?", userID, userID)

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("projects.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []models.Project
	err := base.Session(&gorm.Session{}).
		Distinct("projects.*").
		Order("projects.created_at DESC").
		Scopes(database.Paginate(offset, limit)).
		Preload("Owner").
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update applies a partial update; only set fields change
func (r *GormProjectRepository) Update(id uint64, patch ProjectPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a project and all related data in a transaction so no
// orphaned tasks or memberships stay observable afterwards.
func (r *GormProjectRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectCollaborator{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Project{}, id).Error
	})
}

// AddCollaborator adds a membership row
func (r *GormProjectRepository) AddCollaborator(collab *models.ProjectCollaborator) error {
	return r.db.Create(collab).Error
}

// RemoveCollaborator removes a membership row, reporting whether one existed
func (r *GormProjectRepository) RemoveCollaborator(projectID, userID uint64) (bool, error) {
	result := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectCollaborator{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindCollaborator finds a specific membership row
func (r *GormProjectRepository) FindCollaborator(projectID, userID uint64) (*models.ProjectCollaborator, error) {
	var collab models.ProjectCollaborator
	if err := r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// ListCollaborators lists memberships with user identity, newest-added first
func (r *GormProjectRepository) ListCollaborators(projectID uint64) ([]models.ProjectCollaborator, error) {
	var collabs []models.ProjectCollaborator
	if err := r.db.Preload("User").
		Where("project_id = ?", projectID).
		Order("added_at DESC").
		Find(&collabs).Error; err != nil {
		return nil, err
	}
	return collabs, nil
}
