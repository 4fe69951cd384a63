package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-analytics-api/internal/dto"
	apierrors "github.com/yukikurage/task-analytics-api/internal/errors"
	"github.com/yukikurage/task-analytics-api/internal/logging"
	"github.com/yukikurage/task-analytics-api/internal/middleware"
	"github.com/yukikurage/task-analytics-api/internal/models"
	"github.com/yukikurage/task-analytics-api/internal/services"
	"github.com/yukikurage/task-analytics-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type createTaskRequest struct {
	Title           string            `json:"title" binding:"required,max=255"`
	Description     string            `json:"description"`
	EstimatedHours  *int              `json:"estimated_hours" binding:"required,min=0"`
	DueDate         string            `json:"due_date" binding:"required"`
	Status          models.TaskStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED"`
	CompletionDate  *string           `json:"completion_date"`
	MonetaryCost    *decimal.Decimal  `json:"monetary_cost" binding:"required"`
	AssignedUserIDs []string          `json:"assigned_user_ids" binding:"dive,uuid"`
}

type updateTaskRequest struct {
	Title           *string            `json:"title" binding:"omitempty,max=255"`
	Description     *string            `json:"description"`
	EstimatedHours  *int               `json:"estimated_hours" binding:"omitempty,min=0"`
	DueDate         *string            `json:"due_date"`
	Status          *models.TaskStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED"`
	CompletionDate  *string            `json:"completion_date"`
	MonetaryCost    *decimal.Decimal   `json:"monetary_cost"`
	AssignedUserIDs *[]string          `json:"assigned_user_ids"`
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	dueDate, err := utils.ParseDate(req.DueDate)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	input := services.CreateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedHours:  *req.EstimatedHours,
		DueDate:         dueDate,
		Status:          req.Status,
		MonetaryCost:    *req.MonetaryCost,
		AssignedUserIDs: req.AssignedUserIDs,
	}

	if req.CompletionDate != nil {
		completionDate, err := utils.ParseTimestamp(*req.CompletionDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.CompletionDate = &completionDate
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// ListTasks returns the tasks matching the query filters
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{
		Title:                   c.Query("title"),
		AssignedUserID:          c.Query("assigned_user_id"),
		AssignedUserNameOrEmail: c.Query("assigned_user_name_or_email"),
		SortOrder:               services.SortOrder(c.Query("sort_order")),
	}

	if input.AssignedUserID != "" {
		if _, err := uuid.Parse(input.AssignedUserID); err != nil {
			apierrors.BadRequest(c, "Invalid assigned_user_id")
			return
		}
	}

	if raw := c.Query("due_date"); raw != "" {
		dueDate, err := utils.ParseDate(raw)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.DueDate = &dueDate
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// UpdateTask patches an existing task. Omitted fields keep their value and
// an explicit null completion_date clears it.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		apierrors.BadRequestWithDetails(c, "Invalid request body", err.Error())
		return
	}

	var raw map[string]json.RawMessage
	if err := c.ShouldBindBodyWith(&raw, binding.JSON); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedHours:  req.EstimatedHours,
		Status:          req.Status,
		MonetaryCost:    req.MonetaryCost,
		AssignedUserIDs: req.AssignedUserIDs,
	}

	if req.DueDate != nil {
		dueDate, err := utils.ParseDate(*req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.DueDate = &dueDate
	}

	if value, present := raw["completion_date"]; present && string(value) == "null" {
		input.ClearCompletionDate = true
	} else if req.CompletionDate != nil {
		completionDate, err := utils.ParseTimestamp(*req.CompletionDate)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.CompletionDate = &completionDate
	}

	if req.AssignedUserIDs != nil {
		for _, id := range *req.AssignedUserIDs {
			if _, err := uuid.Parse(id); err != nil {
				apierrors.BadRequest(c, "assigned_user_ids must contain UUIDs")
				return
			}
		}
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	userID, _ := middleware.GetUserID(c)
	logging.Logger.WithFields(logrus.Fields{
		"task_id":    taskID,
		"deleted_by": userID,
	}).Info("Task deleted")

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrAssignedUserNotFound):
		apierrors.ReferenceNotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrTitleTooLong),
		errors.Is(err, services.ErrInvalidEstimatedHours),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidSortOrder),
		errors.Is(err, services.ErrDueDateRequired),
		errors.Is(err, services.ErrInvalidMonetaryCost):
		apierrors.BadRequest(c, err.Error())
	default:
		logging.Logger.WithError(err).Error("Task operation failed")
		apierrors.InternalError(c, "")
	}
}

// pathUUID reads a UUID path parameter, responding 400 when it is malformed
func pathUUID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		apierrors.BadRequest(c, "Invalid "+name)
		return "", false
	}
	return id, true
}
