package dto

import (
	"time"

	"github.com/taskboard/taskboard/internal/domain"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	UserID      string            `json:"userId" validate:"required"`
	Title       string            `json:"title" validate:"required"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// UpdateTaskRequest payload. Absent or null fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// TaskListQuery captures GET /tasks filters.
type TaskListQuery struct {
	UserID string            `query:"userId" validate:"required"`
	Status domain.TaskStatus `query:"status" validate:"omitempty,oneof=pending in-progress completed"`
}

// TaskResponse is the wire shape of a task, shared by the task service and its clients.
type TaskResponse struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewTaskResponse maps a domain task to its response.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
	}
}

// NewTaskResponses maps a slice, never returning nil so the JSON is [] rather than null.
func NewTaskResponses(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, NewTaskResponse(&tasks[i]))
	}
	return resp
}

// ToDomain converts a decoded response back into a task.
func (r TaskResponse) ToDomain() domain.Task {
	return domain.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}
