package handler

import (
	"log/slog"
	"net/http"
	"time"

	"taskdeck/internal/delivery/http/middleware"
	"taskdeck/internal/delivery/http/response"
	"taskdeck/internal/domain/entity"
	"taskdeck/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// taskResponse is the wire shape of a task.
type taskResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func newTaskResponse(task *entity.Task) *taskResponse {
	return &taskResponse{
		ID:        task.ID.String(),
		Text:      task.Text,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.Format(time.RFC3339),
		UpdatedAt: task.UpdatedAt.Format(time.RFC3339),
	}
}

func newTaskListResponse(tasks []*entity.Task) []*taskResponse {
	out := make([]*taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, newTaskResponse(task))
	}

	return out
}

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	uc     usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler, injected by Fx.
func NewTaskHandler(uc usecase.TaskUsecase, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		uc:     uc,
		logger: logger,
	}
}

// List handles the request for the caller's task list.
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.uc.List(c.Request().Context(), middleware.ExternalUID(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskListResponse(tasks), "Tasks retrieved successfully")
}

// Create handles the task creation request.
func (h *TaskHandler) Create(c echo.Context) error {
	var input *usecase.CreateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	task, err := h.uc.Create(c.Request().Context(), middleware.ExternalUID(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newTaskResponse(task), "Task created successfully")
}

// Update handles the partial task update request.
func (h *TaskHandler) Update(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid task id")
	}

	var input *usecase.UpdateTaskInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid task input")
	}

	task, err := h.uc.Update(c.Request().Context(), middleware.ExternalUID(c), taskID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task), "Task updated successfully")
}

// Delete handles the task deletion request.
func (h *TaskHandler) Delete(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid task id")
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.ExternalUID(c), taskID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"id": taskID.String()}, "Task deleted successfully")
}
