package dto

import (
	"time"

	"github.com/keynertyc/Fullstack-Test-01/internal/models"
)

// TaskDTO represents a task in API responses, flattened with project and
// user identity like the task detail queries return them.
type TaskDTO struct {
	ID              uint64              `json:"id"`
	Title           string              `json:"title"`
	Description     *string             `json:"description"`
	Status          models.TaskStatus   `json:"status"`
	Priority        models.TaskPriority `json:"priority"`
	ProjectID       uint64              `json:"project_id"`
	ProjectName     string              `json:"project_name,omitempty"`
	AssignedTo      *uint64             `json:"assigned_to"`
	AssignedToName  *string             `json:"assigned_to_name,omitempty"`
	AssignedToEmail *string             `json:"assigned_to_email,omitempty"`
	CreatedBy       uint64              `json:"created_by"`
	CreatedByName   string              `json:"created_by_name,omitempty"`
	CreatedByEmail  string              `json:"created_by_email,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		ProjectID:   task.ProjectID,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if task.Project.ID != 0 {
		dto.ProjectName = task.Project.Name
	}
	if task.Assignee != nil && task.Assignee.ID != 0 {
		dto.AssignedToName = &task.Assignee.Name
		dto.AssignedToEmail = &task.Assignee.Email
	}
	if task.Creator.ID != 0 {
		dto.CreatedByName = task.Creator.Name
		dto.CreatedByEmail = task.Creator.Email
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
