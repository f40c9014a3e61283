package repository

import (
	"github.com/keynertyc/Fullstack-Test-01/internal/database"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"gorm.io/gorm"
)

// taskSortColumns whitelists sortable columns; raw query input is never
// interpolated into ORDER BY.
var taskSortColumns = map[string]string{
	"created_at": "tasks.created_at",
	"updated_at": "tasks.updated_at",
	"priority":   "tasks.priority",
	"status":     "tasks.status",
}

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with project, creator and assignee preloaded
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Preload("Project").
		Preload("Creator").
		Preload("Assignee").
		First(&task, id).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks visible to a user with filtering, sorting and pagination.
// Visibility follows the project boundary: owner or collaborator. The LEFT JOIN
// can fan out when a project has several collaborators, so both the count and
// the rows are deduplicated by task id.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	base := r.db.Model(&models.Task{}).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Joins("LEFT JOIN project_collaborators ON project_collaborators.project_id = tasks.project_id").
		Where("projects.owner_id = ? OR project_collaborators.user_id = ?", filter.UserID, filter.UserID)

	if filter.Status != nil {
		base = base.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		base = base.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.ProjectID != nil {
		base = base.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.AssignedTo != nil {
		base = base.Where("tasks.assigned_to = ?", *filter.AssignedTo)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Distinct("tasks.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := base.Session(&gorm.Session{}).
		Distinct("tasks.*").
		Order(orderClause(filter.SortBy, filter.Order)).
		Scopes(database.Paginate(filter.Offset, filter.Limit))

	var tasks []models.Task
	err := listQuery.
		Preload("Project").
		Preload("Creator").
		Preload("Assignee").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func orderClause(sortBy, order string) string {
	column, ok := taskSortColumns[sortBy]
	if !ok {
		column = "tasks.created_at"
	}
	if order != "asc" {
		order = "desc"
	}
	return column + " " + order
}

// ListByProject lists all tasks of one project, newest first
func (r *GormTaskRepository) ListByProject(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Preload("Project").
		Preload("Creator").
		Preload("Assignee").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update applies a partial update; only set fields change
func (r *GormTaskRepository) Update(id uint64, patch TaskPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.Priority != nil {
		updates["priority"] = *patch.Priority
	}
	if patch.AssignedTo.Set {
		updates["assigned_to"] = patch.AssignedTo.Value
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
