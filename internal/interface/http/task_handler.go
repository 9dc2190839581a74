package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/karanshah229/taskapp/internal/application"
	"github.com/karanshah229/taskapp/internal/interface/middleware"
	"github.com/karanshah229/taskapp/pkg/response"
)

type TaskHandler struct {
	Tasks  *application.TaskService
	Logger logrus.FieldLogger
}

func NewTaskHandler(tasks *application.TaskService, logger logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Logger: logger}
}

type createTaskRequest struct {
	Description string `json:"description"`
	Status      bool   `json:"status"`
}

type updateTaskRequest struct {
	Description *string `json:"description"`
	Status      *bool   `json:"status"`
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := decodeStrict(c, &req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	t, err := h.Tasks.Create(c.Request.Context(), middleware.CurrentUser(c), application.CreateTaskInput{
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, t, "task created", nil)
}

// List supports ?status=true|false, ?sortBy=field:asc|desc, ?limit= and ?skip=.
func (h *TaskHandler) List(c *gin.Context) {
	opts, err := application.ParseListOptions(c.Query("status"), c.Query("sortBy"), c.Query("limit"), c.Query("skip"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	tasks, err := h.Tasks.List(c.Request.Context(), middleware.CurrentUser(c), opts)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	tasks, err := h.Tasks.Search(c.Request.Context(), middleware.CurrentUser(c), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, tasks, "tasks", map[string]any{"count": len(tasks)})
}

func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.Tasks.GetByID(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task", nil)
}

func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := decodeStrict(c, &req); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	t, err := h.Tasks.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), application.TaskPatch{
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task updated", nil)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	t, err := h.Tasks.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, t, "task deleted", nil)
}
