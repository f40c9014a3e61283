package dto

import (
	"time"

	"github.com/keynertyc/Fullstack-Test-01/internal/models"
)

// ProjectDTO represents a project in API responses, flattened with the
// owner's identity.
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     uint64    `json:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty"`
	OwnerEmail  string    `json:"owner_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollaboratorDTO represents a membership row joined with user identity.
type CollaboratorDTO struct {
	ID      uint64    `json:"id"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerID:     project.OwnerID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}

	// Include owner identity if preloaded
	if project.Owner.ID != 0 {
		dto.OwnerName = project.Owner.Name
		dto.OwnerEmail = project.Owner.Email
	}

	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		dtos[i] = ToProjectDTO(project)
	}
	return dtos
}

// ToCollaboratorDTO converts a membership row to CollaboratorDTO
func ToCollaboratorDTO(collab models.ProjectCollaborator) CollaboratorDTO {
	return CollaboratorDTO{
		ID:      collab.UserID,
		Email:   collab.User.Email,
		Name:    collab.User.Name,
		AddedAt: collab.AddedAt,
	}
}

// ToCollaboratorDTOs converts a slice of membership rows
func ToCollaboratorDTOs(collabs []models.ProjectCollaborator) []CollaboratorDTO {
	dtos := make([]CollaboratorDTO, len(collabs))
	for i, collab := range collabs {
		dtos[i] = ToCollaboratorDTO(collab)
	}
	return dtos
}
