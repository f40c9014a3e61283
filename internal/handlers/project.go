package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/dto"
	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
	"github.com/keynertyc/Fullstack-Test-01/internal/utils"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

// ProjectHandler coordinates project aggregate HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns the caller's visible projects, paginated.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	projects, total, err := h.projectService.List(userID, params.Offset, params.Limit)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondPage(c, dto.ToProjectDTOs(projects), utils.NewPaginationResponse(params, total))
}

// GetProject returns one project the caller has access to.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(projectID, userID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondOK(c, dto.ToProjectDTO(*project), "")
}

// CreateProject creates a project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateProjectRequest struct {
		Name        string  `json:"name" binding:"required,max=255"`
		Description *string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	project, err := h.projectService.Create(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondCreated(c, dto.ToProjectDTO(*project), "Project created successfully")
}

// UpdateProject applies a partial update. Owner-only.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateProjectRequest struct {
		Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
		Description *string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	project, err := h.projectService.Update(projectID, userID, repository.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondOK(c, dto.ToProjectDTO(*project), "Project updated successfully")
}

// DeleteProject removes a project and everything under it. Owner-only.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(projectID, userID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondOK(c, nil, "Project deleted successfully")
}

// AddCollaborator grants another user access. Owner-only.
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type AddCollaboratorRequest struct {
		UserID uint64 `json:"user_id" binding:"required,min=1"`
	}

	var req AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	if err := h.projectService.AddCollaborator(projectID, userID, req.UserID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondCreated(c, nil, "Collaborator added successfully")
}

// RemoveCollaborator revokes a membership. Owner-only.
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	targetID, ok := parseIDParam(c, "userId")
	if !ok {
		return
	}

	if err := h.projectService.RemoveCollaborator(projectID, userID, targetID); err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondOK(c, nil, "Collaborator removed successfully")
}

// ListCollaborators returns the membership list. Any member may view it.
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	collabs, err := h.projectService.ListCollaborators(projectID, userID)
	if err != nil {
		h.respondProjectError(c, err)
		return
	}

	respondOK(c, dto.ToCollaboratorDTOs(collabs), "")
}

func (h *ProjectHandler) respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrCollaboratorNoSuchUser):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrCollaboratorNotFound):
		apierrors.NotFound(c, "Collaborator not found")
	case errors.Is(err, services.ErrNotProjectOwner):
		apierrors.Forbidden(c, "Only project owner can perform this action")
	case errors.Is(err, services.ErrProjectAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrProjectNameTooLong),
		errors.Is(err, services.ErrOwnerImplicitMember):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAlreadyCollaborator):
		apierrors.Conflict(c, "User is already a collaborator")
	default:
		log := logger.Get()
		log.Error().Err(err).Msg("project handler failure")
		apierrors.InternalError(c, "")
	}
}

// parseIDParam parses a positive integer path parameter, responding with a
// 400 on malformed input.
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+name+" parameter")
		return 0, false
	}
	return id, true
}
