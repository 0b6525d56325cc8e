package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"todolist/internal/models"
	"todolist/internal/services"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	taskService *services.TaskService
}

// NewHandlers creates a new handlers instance
func NewHandlers(taskService *services.TaskService) *Handlers {
	return &Handlers{taskService: taskService}
}

// ListTasksHandler handles GET /
func (h *Handlers) ListTasksHandler(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		log.Printf("[TASKS] Error retrieving tasks for view: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load to-do list.")
		return
	}

	c.HTML(http.StatusOK, listTemplate, gin.H{"todos": tasks})
}

// CreateTaskHandler handles POST /todos
func (h *Handlers) CreateTaskHandler(c *gin.Context) {
	var req models.CreateTaskRequest
	if err := c.ShouldBind(&req); err != nil {
		c.String(http.StatusBadRequest, "Task title is required.")
		return
	}

	if _, err := h.taskService.CreateTask(c.Request.Context(), req.Title, req.Description); err != nil {
		log.Printf("[TASKS] Error creating task: %v", err)
		h.respondError(c, err, "Failed to add task.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ToggleTaskHandler handles PUT /todos/:id
func (h *Handlers) ToggleTaskHandler(c *gin.Context) {
	id := c.Param("id")

	var done models.DoneFlag
	if isJSON(c) {
		var req models.ToggleTaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.String(http.StatusBadRequest, "Invalid request body.")
			return
		}
		done = req.Done
	} else {
		done = models.ParseDoneFlag(c.PostForm("done"))
	}

	if _, err := h.taskService.SetTaskDone(c.Request.Context(), id, done); err != nil {
		log.Printf("[TASKS] Error updating task status: %v", err)
		h.respondError(c, err, "Failed to update task.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// DeleteTaskHandler handles DELETE /todos/:id
func (h *Handlers) DeleteTaskHandler(c *gin.Context) {
	if _, err := h.taskService.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		log.Printf("[TASKS] Error deleting task: %v", err)
		h.respondError(c, err, "Failed to delete task.")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// respondError maps store errors onto status codes. fallback is the 500 message.
func (h *Handlers) respondError(c *gin.Context, err error, fallback string) {
	var verr *models.ValidationError
	switch {
	case errors.Is(err, models.ErrTaskNotFound):
		c.String(http.StatusNotFound, "Task not found.")
	case errors.As(err, &verr):
		c.String(http.StatusBadRequest, "Invalid task: "+verr.Error())
	default:
		c.String(http.StatusInternalServerError, fallback)
	}
}

func isJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "application/json")
}
