package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/keynertyc/Fullstack-Test-01/internal/dto"
	apierrors "github.com/keynertyc/Fullstack-Test-01/internal/errors"
	"github.com/keynertyc/Fullstack-Test-01/internal/middleware"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
	"github.com/keynertyc/Fullstack-Test-01/internal/services"
	"github.com/keynertyc/Fullstack-Test-01/internal/utils"
	"github.com/keynertyc/Fullstack-Test-01/pkg/logger"
)

// TaskHandler coordinates task aggregate HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns the caller's visible tasks, filtered, sorted and paginated.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type taskFilterQuery struct {
		Status     string  `form:"status" binding:"omitempty,oneof=pending in_progress completed"`
		Priority   string  `form:"priority" binding:"omitempty,oneof=low medium high"`
		ProjectID  *uint64 `form:"project_id" binding:"omitempty,min=1"`
		AssignedTo *uint64 `form:"assigned_to" binding:"omitempty,min=1"`
		SortBy     string  `form:"sort_by,default=created_at" binding:"omitempty,oneof=created_at updated_at priority status"`
		Order      string  `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
	}

	var q taskFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	params := utils.GetPaginationParams(c)

	filter := repository.TaskFilter{
		UserID:     userID,
		ProjectID:  q.ProjectID,
		AssignedTo: q.AssignedTo,
		SortBy:     q.SortBy,
		Order:      q.Order,
		Offset:     params.Offset,
		Limit:      params.Limit,
	}
	if q.Status != "" {
		status := models.TaskStatus(q.Status)
		filter.Status = &status
	}
	if q.Priority != "" {
		priority := models.TaskPriority(q.Priority)
		filter.Priority = &priority
	}

	tasks, total, err := h.taskService.List(filter)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondPage(c, dto.ToTaskDTOs(tasks), utils.NewPaginationResponse(params, total))
}

// GetTask returns one task the caller has access to.
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(taskID, userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondOK(c, dto.ToTaskDTO(*task), "")
}

// CreateTask creates a task in a project the caller has access to.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required,max=255"`
		Description *string `json:"description"`
		Status      string  `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
		Priority    string  `json:"priority" binding:"omitempty,oneof=low medium high"`
		ProjectID   uint64  `json:"project_id" binding:"required,min=1"`
		AssignedTo  *uint64 `json:"assigned_to" binding:"omitempty,min=1"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   userID,
	})
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondCreated(c, dto.ToTaskDTO(*task), "Task created successfully")
}

// UpdateTask applies a partial update; any project member may update.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	type UpdateTaskRequest struct {
		Title       *string               `json:"title" binding:"omitempty,min=1,max=255"`
		Description *string               `json:"description"`
		Status      *string               `json:"status" binding:"omitempty,oneof=pending in_progress completed"`
		Priority    *string               `json:"priority" binding:"omitempty,oneof=low medium high"`
		AssignedTo  repository.OptionalID `json:"assigned_to"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	patch := repository.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
	}
	if req.Status != nil {
		status := models.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}

	task, err := h.taskService.Update(taskID, userID, patch)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondOK(c, dto.ToTaskDTO(*task), "Task updated successfully")
}

// DeleteTask removes a task; any project member may delete.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.Delete(taskID, userID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondOK(c, nil, "Task deleted successfully")
}

// ListTasksByProject returns every task in one project, newest first.
func (h *TaskHandler) ListTasksByProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	projectID, ok := parseIDParam(c, "projectId")
	if !ok {
		return
	}

	tasks, err := h.taskService.ListByProject(projectID, userID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	respondOK(c, dto.ToTaskDTOs(tasks), "")
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, "Project not found")
	case errors.Is(err, services.ErrTaskAccessDenied),
		errors.Is(err, services.ErrProjectAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrInvalidTaskTitle),
		errors.Is(err, services.ErrTaskTitleTooLong),
		errors.Is(err, services.ErrAssigneeNotMember):
		apierrors.BadRequest(c, err.Error())
	default:
		log := logger.Get()
		log.Error().Err(err).Msg("task handler failure")
		apierrors.InternalError(c, "")
	}
}
