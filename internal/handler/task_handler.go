package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"taskflow/internal/model"
	"taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskService is the store API the handler serves over HTTP.
type TaskService interface {
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Create(ctx context.Context, in model.TaskInput) (*model.Task, error)
	Update(ctx context.Context, id uuid.UUID, in model.TaskInput) (*model.Task, error)
	Toggle(ctx context.Context, id uuid.UUID) (*model.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskHandler struct {
	tasks TaskService
	loc   *time.Location
	now   func() time.Time
}

// NewTaskHandler classifies due dates by calendar day in loc.
func NewTaskHandler(tasks TaskService, loc *time.Location) *TaskHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TaskHandler{tasks: tasks, loc: loc, now: time.Now}
}

// WithClock replaces the time source used for due date classification.
func (h *TaskHandler) WithClock(now func() time.Time) *TaskHandler {
	h.now = now
	return h
}

// TaskRequest is the body of POST /api/tasks and PUT /api/tasks/{id}
type TaskRequest struct {
	Title       string  `json:"title" example:"Buy groceries"`
	Description *string `json:"description" example:"Milk, eggs, bread"`
	DueDate     *string `json:"due_date" example:"2024-06-11T17:00:00Z"`
	Category    *string `json:"category" enums:"Work,Personal,Shopping,Health,Other"`
	Completed   *bool   `json:"completed"`
}

type TaskResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     *string        `json:"due_date"`
	Category    string         `json:"category"`
	Completed   bool           `json:"completed"`
	CreatedAt   string         `json:"created_at"`
	Due         *model.DueInfo `json:"due,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// List godoc
// @Summary  List tasks
// @Tags     Tasks
// @Produce  json
// @Param    status    query  string  false  "Completion filter"  Enums(all, active, completed)
// @Param    category  query  string  false  "Category filter"    Enums(all, Work, Personal, Shopping, Health, Other)
// @Success  200  {array}   TaskResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	status, err := model.ParseStatusFilter(c.Query("status"))
	if err != nil {
		h.fail(c, err, "list tasks")
		return
	}
	category, err := model.ParseCategoryFilter(c.Query("category"))
	if err != nil {
		h.fail(c, err, "list tasks")
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), model.TaskFilter{Status: status, Category: category})
	if err != nil {
		h.fail(c, err, "list tasks")
		return
	}

	now := h.now().In(h.loc)
	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i], now)
	}
	c.JSON(http.StatusOK, response)
}

// GetByID godoc
// @Summary  Get a task
// @Tags     Tasks
// @Produce  json
// @Param    id   path  string  true  "Task ID"
// @Success  200  {object}  TaskResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "retrieve task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task, h.now().In(h.loc)))
}

// Create godoc
// @Summary  Create a task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Param    task  body  TaskRequest  true  "New task"
// @Success  201  {object}  TaskResponse
// @Failure  400  {object}  ErrorResponse
// @Router   /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	in, ok := bindTaskInput(c)
	if !ok {
		return
	}
	// completed is not part of the create payload
	in.Completed = nil

	task, err := h.tasks.Create(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, "create task")
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task, h.now().In(h.loc)))
}

// Update godoc
// @Summary      Replace a task
// @Description  Every writable field is replaced. A null or missing due_date clears it; completed is kept when missing.
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id    path  string       true  "Task ID"
// @Param        task  body  TaskRequest  true  "Task fields"
// @Success      200  {object}  TaskResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}
	in, ok := bindTaskInput(c)
	if !ok {
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), id, in)
	if err != nil {
		h.fail(c, err, "update task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task, h.now().In(h.loc)))
}

// Toggle godoc
// @Summary  Flip the completed flag
// @Tags     Tasks
// @Produce  json
// @Param    id   path  string  true  "Task ID"
// @Success  200  {object}  TaskResponse
// @Failure  404  {object}  ErrorResponse
// @Router   /api/tasks/{id}/toggle [patch]
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Toggle(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "update task")
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task, h.now().In(h.loc)))
}

// Delete godoc
// @Summary  Delete a task
// @Tags     Tasks
// @Param    id   path  string  true  "Task ID"
// @Success  204
// @Failure  404  {object}  ErrorResponse
// @Router   /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "delete task")
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories godoc
// @Summary  List the task categories
// @Tags     Tasks
// @Produce  json
// @Success  200  {array}  string
// @Router   /api/categories [get]
func (h *TaskHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, model.Categories())
}

func (h *TaskHandler) fail(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Task not found"})
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		log.Printf("❌ Failed to %s: %v", action, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

func parseTaskID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid task ID format"})
		return uuid.Nil, false
	}
	return id, true
}

func bindTaskInput(c *gin.Context) (model.TaskInput, bool) {
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return model.TaskInput{}, false
	}

	due, err := parseDueDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return model.TaskInput{}, false
	}

	return model.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     due,
		Category:    req.Category,
		Completed:   req.Completed,
	}, true
}

// Layouts without an offset are read as UTC.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseDueDate maps null and "" to no deadline.
func parseDueDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}

	s := strings.TrimSpace(*raw)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: due_date %q is not an ISO-8601 timestamp", model.ErrValidation, s)
}

func toTaskResponse(task *model.Task, now time.Time) TaskResponse {
	response := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Category:    string(task.Category),
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		Due:         model.ClassifyDue(task.DueDate, task.Completed, now),
	}

	if task.DueDate != nil {
		dueDate := task.DueDate.UTC().Format(time.RFC3339)
		response.DueDate = &dueDate
	}
	return response
}
