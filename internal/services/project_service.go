package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/keynertyc/Fullstack-Test-01/internal/constants"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectAccessDenied    = errors.New("access denied")
	ErrNotProjectOwner        = errors.New("only the project owner can perform this action")
	ErrInvalidProjectName     = errors.New("project name cannot be empty")
	ErrProjectNameTooLong     = errors.New("project name too long")
	ErrCollaboratorNotFound   = errors.New("collaborator not found")
	ErrAlreadyCollaborator    = errors.New("user is already a collaborator")
	ErrOwnerImplicitMember    = errors.New("project owner is already a member")
	ErrCollaboratorNoSuchUser = errors.New("user not found")
)

// ProjectService provides business logic for the project aggregate.
// Every operation checks existence before access, so a missing project is
// always reported as not found regardless of caller identity.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	access      *AccessService
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, access *AccessService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		access:      access,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description *string
	OwnerID     uint64
}

// Create creates a new project owned by the caller. Names are not unique.
func (s *ProjectService) Create(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}
	if len(name) > constants.MaxNameLength {
		return nil, ErrProjectNameTooLong
	}

	project := &models.Project{
		Name:        name,
		Description: input.Description,
		OwnerID:     input.OwnerID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.findByID(project.ID)
}

// Get returns a project the user has access to.
func (s *ProjectService) Get(projectID, userID uint64) (*models.Project, error) {
	project, err := s.findByID(projectID)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.HasAccess(projectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectAccessDenied
	}

	return project, nil
}

// List returns the projects the user owns or collaborates on.
func (s *ProjectService) List(userID uint64, offset, limit int) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListByUserID(userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// Update applies a partial update. Owner-only.
func (s *ProjectService) Update(projectID, userID uint64, patch repository.ProjectPatch) (*models.Project, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrInvalidProjectName
		}
		if len(name) > constants.MaxNameLength {
			return nil, ErrProjectNameTooLong
		}
		patch.Name = &name
	}

	if err := s.requireOwner(projectID, userID); err != nil {
		return nil, err
	}

	if err := s.projectRepo.Update(projectID, patch); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return s.findByID(projectID)
}

// Delete removes a project together with its tasks and memberships. Owner-only.
func (s *ProjectService) Delete(projectID, userID uint64) error {
	if err := s.requireOwner(projectID, userID); err != nil {
		return err
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// AddCollaborator grants a user access to the project. Owner-only. Adding the
// owner is rejected as invalid rather than silently ignored, and adding an
// existing collaborator is a conflict.
func (s *ProjectService) AddCollaborator(projectID, ownerID, targetUserID uint64) error {
	project, err := s.findByID(projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != ownerID {
		return ErrNotProjectOwner
	}

	if _, err := s.userRepo.FindByID(targetUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCollaboratorNoSuchUser
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if targetUserID == project.OwnerID {
		return ErrOwnerImplicitMember
	}

	if _, err := s.projectRepo.FindCollaborator(projectID, targetUserID); err == nil {
		return ErrAlreadyCollaborator
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to verify membership: %w", err)
	}

	collab := &models.ProjectCollaborator{
		ProjectID: projectID,
		UserID:    targetUserID,
		AddedAt:   time.Now(),
	}

	if err := s.projectRepo.AddCollaborator(collab); err != nil {
		return fmt.Errorf("failed to add collaborator: %w", err)
	}

	return nil
}

// RemoveCollaborator revokes a membership. Owner-only. Removing an absent
// membership reports not found instead of silently succeeding.
func (s *ProjectService) RemoveCollaborator(projectID, ownerID, targetUserID uint64) error {
	if err := s.requireOwner(projectID, ownerID); err != nil {
		return err
	}

	removed, err := s.projectRepo.RemoveCollaborator(projectID, targetUserID)
	if err != nil {
		return fmt.Errorf("failed to remove collaborator: %w", err)
	}
	if !removed {
		return ErrCollaboratorNotFound
	}

	return nil
}

// ListCollaborators returns the membership rows joined with user identity,
// newest-added first. Any member may view the list.
func (s *ProjectService) ListCollaborators(projectID, userID uint64) ([]models.ProjectCollaborator, error) {
	if _, err := s.findByID(projectID); err != nil {
		return nil, err
	}

	ok, err := s.access.HasAccess(projectID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectAccessDenied
	}

	collabs, err := s.projectRepo.ListCollaborators(projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}

	return collabs, nil
}

func (s *ProjectService) findByID(projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) requireOwner(projectID, userID uint64) error {
	project, err := s.findByID(projectID)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotProjectOwner
	}
	return nil
}
