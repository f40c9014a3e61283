package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
)

// AccessLevel is the resolved relationship between a user and a project.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessCollaborator
	AccessOwner
)

func (l AccessLevel) String() string {
	switch l {
	case AccessOwner:
		return "owner"
	case AccessCollaborator:
		return "collaborator"
	default:
		return "none"
	}
}

// AccessService resolves project access for a subject. Every call re-queries
// authoritative state; decisions are never cached across operations.
type AccessService struct {
	projectRepo repository.ProjectRepository
}

// NewAccessService creates a new AccessService.
func NewAccessService(projectRepo repository.ProjectRepository) *AccessService {
	return &AccessService{projectRepo: projectRepo}
}

// Resolve returns the single access level for the user on the project.
// A missing project resolves to AccessNone rather than an error; callers
// that need a 404 check existence separately.
func (s *AccessService) Resolve(projectID, userID uint64) (AccessLevel, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessNone, nil
		}
		return AccessNone, fmt.Errorf("failed to resolve project: %w", err)
	}

	if project.OwnerID == userID {
		return AccessOwner, nil
	}

	if _, err := s.projectRepo.FindCollaborator(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessNone, nil
		}
		return AccessNone, fmt.Errorf("failed to resolve membership: %w", err)
	}

	return AccessCollaborator, nil
}

// ProjectExists reports whether the project is present, letting callers pick
// between a not-found and a forbidden outcome.
func (s *AccessService) ProjectExists(projectID uint64) (bool, error) {
	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to resolve project: %w", err)
	}
	return true, nil
}

// HasAccess reports whether the user is the owner or a collaborator.
func (s *AccessService) HasAccess(projectID, userID uint64) (bool, error) {
	level, err := s.Resolve(projectID, userID)
	if err != nil {
		return false, err
	}
	return level != AccessNone, nil
}

// IsOwner reports whether the user owns the project.
func (s *AccessService) IsOwner(projectID, userID uint64) (bool, error) {
	level, err := s.Resolve(projectID, userID)
	if err != nil {
		return false, err
	}
	return level == AccessOwner, nil
}
