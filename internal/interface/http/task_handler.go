package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/danisworo/taskhub/internal/application"
	"github.com/danisworo/taskhub/internal/domain/entity"
	"github.com/danisworo/taskhub/internal/interface/middleware"
	"github.com/danisworo/taskhub/pkg/response"
	"github.com/danisworo/taskhub/pkg/validation"
)

type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=255"`
	Description string `json:"description" binding:"omitempty,max=1000"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Completed   *bool   `json:"completed"`
}

type listTasksQuery struct {
	Limit  int `form:"limit,default=20" binding:"gte=1,lte=100"`
	Offset int `form:"offset,default=0" binding:"gte=0"`
}

// List GET /api/tasks/
func (h *TaskHandler) List(c *gin.Context) {
	var q listTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid query", validation.ToDetails(err))
		return
	}

	page, err := h.Svc.List(c.Request.Context(), middleware.UserID(c), q.Limit, q.Offset)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"tasks": toTaskPayloads(page.Tasks),
		"total": page.Total,
	}, "tasks", gin.H{"limit": q.Limit, "offset": q.Offset})
}

// Create POST /api/tasks/
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}

	t, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Description)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toTaskPayload(t), "task created", nil)
}

// Get GET /api/tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.GetByID(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskPayload(t), "task", nil)
}

// Update PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payload", validation.ToDetails(err))
		return
	}

	patch := entity.TaskPatch{Title: req.Title, Description: req.Description, Completed: req.Completed}
	t, err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), patch)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskPayload(t), "task updated", nil)
}

// Delete DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "task deleted", nil)
}

// Toggle PATCH /api/tasks/:id/toggle
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.ToggleCompletion(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTaskPayload(t), "task toggled", nil)
}

func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid task id",
			map[string]string{"id": "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func (h *TaskHandler) writeTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, application.ErrTaskNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "task not found", nil)
	case errors.Is(err, application.ErrTaskForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "task belongs to another user", nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("task request failed")
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}
