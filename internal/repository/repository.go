package repository

import (
	"encoding/json"

	"github.com/keynertyc/Fullstack-Test-01/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByID finds a project by ID with the owner preloaded
	FindByID(id uint64) (*models.Project, error)

	// ListByUserID lists projects owned by or shared with the user,
	// newest first, deduplicated by project id
	ListByUserID(userID uint64, offset, limit int) ([]models.Project, int64, error)

	// Update applies a partial update; only set fields change
	Update(id uint64, patch ProjectPatch) error

	// Delete removes a project together with its memberships and tasks
	Delete(id uint64) error

	// AddCollaborator adds a membership row
	AddCollaborator(collab *models.ProjectCollaborator) error

	// RemoveCollaborator removes a membership row, reporting whether one existed
	RemoveCollaborator(projectID, userID uint64) (bool, error)

	// FindCollaborator finds a specific membership row
	FindCollaborator(projectID, userID uint64) (*models.ProjectCollaborator, error)

	// ListCollaborators lists memberships joined with user identity, newest-added first
	ListCollaborators(projectID uint64) ([]models.ProjectCollaborator, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with project, creator and assignee preloaded
	FindByID(id uint64) (*models.Task, error)

	// List retrieves tasks visible to a user with filtering, sorting and pagination
	List(filter TaskFilter) ([]models.Task, int64, error)

	// ListByProject lists all tasks of one project, newest first
	ListByProject(projectID uint64) ([]models.Task, error)

	// Update applies a partial update; only set fields change
	Update(id uint64, patch TaskPatch) error

	// Delete removes a task
	Delete(id uint64) error
}

// StatisticsRepository aggregates per-user counters across the
// ownership-or-collaboration visibility boundary.
type StatisticsRepository interface {
	Collect(userID uint64) (*UserStatistics, error)
}

// TaskFilter holds filtering options for listing tasks. All filters are
// conjunctive; nil means no constraint.
type TaskFilter struct {
	UserID     uint64
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	ProjectID  *uint64
	AssignedTo *uint64
	SortBy     string
	Order      string
	Offset     int
	Limit      int
}

// ProjectPatch is a partial project update. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Description *string
}

// TaskPatch is a partial task update. Nil fields are left untouched;
// AssignedTo distinguishes "omitted" from "set to null".
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
	AssignedTo  OptionalID
}

// OptionalID is a tri-state id field for JSON patches: absent, null, or set.
// The zero value means the field was omitted.
type OptionalID struct {
	Set   bool
	Value *uint64
}

// UnmarshalJSON is only invoked when the key is present, which is what makes
// the omitted/null distinction observable after binding.
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v uint64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// TasksByStatus breaks down visible task counts per status.
type TasksByStatus struct {
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
}

// UserStatistics is the aggregate view returned by the statistics endpoint.
type UserStatistics struct {
	TotalProjects         int64         `json:"total_projects"`
	OwnedProjects         int64         `json:"owned_projects"`
	CollaboratingProjects int64         `json:"collaborating_projects"`
	TotalTasks            int64         `json:"total_tasks"`
	TasksByStatus         TasksByStatus `json:"tasks_by_status"`
	TasksAssignedToMe     int64         `json:"tasks_assigned_to_me"`
	TasksCreatedByMe      int64         `json:"tasks_created_by_me"`
}
