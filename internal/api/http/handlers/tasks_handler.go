package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/taskboard/taskboard/internal/api/dto"
	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/service"
)

// TasksHandler exposes the task service endpoints.
type TasksHandler struct {
	service *service.TaskService
}

// NewTasksHandler constructs handler.
func NewTasksHandler(taskService *service.TaskService) *TasksHandler {
	return &TasksHandler{service: taskService}
}

// CreateTask POST /tasks.
func (h *TasksHandler) CreateTask(c *fiber.Ctx) error {
	var req dto.CreateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task, err := h.service.CreateTask(c.UserContext(), service.TaskCreateInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTaskResponse(task))
}

// ListTasks GET /tasks?userId=&status=.
func (h *TasksHandler) ListTasks(c *fiber.Ctx) error {
	query := dto.TaskListQuery{
		UserID: c.Query("userId"),
		Status: domain.TaskStatus(c.Query("status")),
	}
	if err := validateStruct(&query); err != nil {
		return err
	}

	var status *domain.TaskStatus
	if query.Status != "" {
		status = &query.Status
	}
	tasks, err := h.service.ListTasks(c.UserContext(), query.UserID, status)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskResponses(tasks))
}

// GetTask GET /tasks/:id.
func (h *TasksHandler) GetTask(c *fiber.Ctx) error {
	task, err := h.service.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// UpdateTask PUT /tasks/:id.
func (h *TasksHandler) UpdateTask(c *fiber.Ctx) error {
	var req dto.UpdateTaskRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	task, err := h.service.UpdateTask(c.UserContext(), c.Params("id"), domain.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTaskResponse(task))
}

// DeleteTask DELETE /tasks/:id.
func (h *TasksHandler) DeleteTask(c *fiber.Ctx) error {
	if err := h.service.DeleteTask(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
