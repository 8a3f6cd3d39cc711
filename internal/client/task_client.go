package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/api/dto"
	"github.com/taskboard/taskboard/internal/domain"
)

const taskServiceName = "task-service"

// TaskClient lists a user's tasks through the task service.
type TaskClient struct {
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewTaskClient constructs a client for the task service rooted at baseURL.
func NewTaskClient(baseURL string, timeout time.Duration, logger *zap.Logger) *TaskClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskClient{baseURL: baseURL, timeout: timeout, logger: logger}
}

// ListTasks calls GET /tasks?userId=&status=. A 404 maps to domain.ErrNotFound.
func (c *TaskClient) ListTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("userId", userID)
	if status != nil {
		query.Set("status", string(*status))
	}

	agent := fiber.Get(fmt.Sprintf("%s/tasks?%s", c.baseURL, query.Encode()))
	agent.Timeout(callTimeout(ctx, c.timeout))
	code, body, errs := agent.Bytes()
	if err := joinErrors(errs); err != nil {
		c.logger.Warn("task listing failed", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("list tasks for %s: %w", userID, err)
	}

	switch code {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	default:
		c.logger.Warn("task listing unexpected status", zap.String("user_id", userID), zap.Int("status", code))
		return nil, &StatusError{Service: taskServiceName, Code: code}
	}

	var items []dto.TaskResponse
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("decode tasks for %s: %w", userID, err)
	}
	tasks := make([]domain.Task, 0, len(items))
	for _, item := range items {
		tasks = append(tasks, item.ToDomain())
	}
	return tasks, nil
}
