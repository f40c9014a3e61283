package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/keynertyc/Fullstack-Test-01/internal/constants"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrTaskAccessDenied  = errors.New("access denied")
	ErrInvalidTaskTitle  = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong  = errors.New("task title too long")
	ErrAssigneeNotMember = errors.New("cannot assign task to user who is not a project member")
)

// TaskService handles task business logic. Tasks inherit access from their
// parent project; any member may read, update or delete them.
type TaskService struct {
	taskRepo repository.TaskRepository
	access   *AccessService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, access *AccessService) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		access:   access,
	}
}

// CreateTaskInput represents parameters to create a task.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	ProjectID   uint64
	AssignedTo  *uint64
	CreatedBy   uint64
}

// Create creates a task in a project the creator has access to. The assignee,
// if given, must also have access at assignment time; later membership changes
// are not re-verified.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidTaskTitle
	}
	if len(title) > constants.MaxNameLength {
		return nil, ErrTaskTitleTooLong
	}

	if exists, err := s.projectExists(input.ProjectID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrProjectNotFound
	}

	ok, err := s.access.HasAccess(input.ProjectID, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectAccessDenied
	}

	if input.AssignedTo != nil {
		if err := s.requireMemberAssignee(input.ProjectID, *input.AssignedTo); err != nil {
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		ProjectID:   input.ProjectID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.findByID(task.ID)
}

// Get returns a task the user has access to via its project.
func (s *TaskService) Get(taskID, userID uint64) (*models.Task, error) {
	task, err := s.findByID(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.requireAccess(task.ProjectID, userID); err != nil {
		return nil, err
	}

	return task, nil
}

// Update applies a partial update. Any project member may update; an assignee
// change is validated exactly like at creation.
func (s *TaskService) Update(taskID, userID uint64, patch repository.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, ErrInvalidTaskTitle
		}
		if len(title) > constants.MaxNameLength {
			return nil, ErrTaskTitleTooLong
		}
		patch.Title = &title
	}

	task, err := s.findByID(taskID)
	if err != nil {
		return nil, err
	}

	if err := s.requireAccess(task.ProjectID, userID); err != nil {
		return nil, err
	}

	if patch.AssignedTo.Set && patch.AssignedTo.Value != nil {
		if err := s.requireMemberAssignee(task.ProjectID, *patch.AssignedTo.Value); err != nil {
			return nil, err
		}
	}

	if err := s.taskRepo.Update(taskID, patch); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.findByID(taskID)
}

// Delete removes a task. Any project member may delete.
func (s *TaskService) Delete(taskID, userID uint64) error {
	task, err := s.findByID(taskID)
	if err != nil {
		return err
	}

	if err := s.requireAccess(task.ProjectID, userID); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// ListByProject returns all tasks of a project the user has access to,
// newest first. Bounded by project size, so unpaginated.
func (s *TaskService) ListByProject(projectID, userID uint64) ([]models.Task, error) {
	if exists, err := s.projectExists(projectID); err != nil {
		return nil, err
	} else if !exists {
		return nil, ErrProjectNotFound
	}

	if err := s.requireAccess(projectID, userID); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByProject(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// List returns the filtered, sorted, paginated tasks visible to the user.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, int64, error) {
	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

func (s *TaskService) findByID(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) requireAccess(projectID, userID uint64) error {
	ok, err := s.access.HasAccess(projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTaskAccessDenied
	}
	return nil
}

func (s *TaskService) requireMemberAssignee(projectID, assigneeID uint64) error {
	ok, err := s.access.HasAccess(projectID, assigneeID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAssigneeNotMember
	}
	return nil
}

func (s *TaskService) projectExists(projectID uint64) (bool, error) {
	return s.access.ProjectExists(projectID)
}
