package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/events"
	"github.com/taskboard/taskboard/internal/repository"
	apperrors "github.com/taskboard/taskboard/pkg/util/errorutil"
)

// Owner validation failure reasons reported in ValidationError details.
const (
	ReasonOwnerNotFound   = "owner_not_found"
	ReasonOwnerUnverified = "owner_unverified"
)

// UserDirectory confirms that a user exists in the user service.
type UserDirectory interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

// TaskService owns task records and the per-user task index.
type TaskService struct {
	tasks      repository.TaskRepository
	users      UserDirectory
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TaskDependencies bundles collaborators for the task service.
type TaskDependencies struct {
	TaskRepo   repository.TaskRepository
	Users      UserDirectory
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	UserID      string
	Title       string
	Description *string
	Status      domain.TaskStatus
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{
		tasks:      deps.TaskRepo,
		users:      deps.Users,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateTask confirms the owner with the user service, then registers the
// task record and its index entry atomically. Nothing is written when the
// owner is absent or cannot be confirmed.
func (s *TaskService) CreateTask(ctx context.Context, input TaskCreateInput) (*domain.Task, error) {
	if strings.TrimSpace(input.UserID) == "" || strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewInvalidRequest("userId and title required", nil)
	}
	status := input.Status
	if status == "" {
		status = domain.TaskStatusPending
	}
	if !status.Valid() {
		return nil, apperrors.NewInvalidRequest("invalid status", map[string]any{"status": status})
	}

	exists, err := s.users.UserExists(ctx, input.UserID)
	if err != nil {
		return nil, ownerError(input.UserID, ReasonOwnerUnverified, err)
	}
	if !exists {
		return nil, ownerError(input.UserID, ReasonOwnerNotFound, nil)
	}

	task := &domain.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTaskCreated,
		SubjectID: task.ID,
		Payload: events.TaskCreatedPayload{
			UserID: task.UserID,
			Title:  task.Title,
			Status: task.Status,
		},
	})
	return task, nil
}

// GetTask fetches a task by id.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task", taskID)
	}
	return task, nil
}

// ListTasks returns the user's indexed tasks, optionally restricted to one
// status. A user with no tasks gets an empty slice; NotFound is reserved for
// users the user service does not know.
func (s *TaskService) ListTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	listing, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(listing.Unreadable) > 0 {
		s.logger.Warn("skipping unreadable task records",
			zap.String("user_id", userID),
			zap.Strings("task_ids", listing.Unreadable))
	}
	if len(listing.Dangling) > 0 {
		s.logger.Warn("pruning dangling task index entries",
			zap.String("user_id", userID),
			zap.Strings("task_ids", listing.Dangling))
		if err := s.tasks.Index().Prune(ctx, userID, listing.Dangling...); err != nil {
			s.logger.Warn("prune task index", zap.String("user_id", userID), zap.Error(err))
		}
	}
	tasks := listing.Tasks

	if len(tasks) == 0 {
		exists, err := s.users.UserExists(ctx, userID)
		if err != nil {
			return nil, apperrors.NewDependencyError("user-service", err)
		}
		if !exists {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return []domain.Task{}, nil
	}

	if status == nil {
		return tasks, nil
	}
	filtered := make([]domain.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.Status == *status {
			filtered = append(filtered, task)
		}
	}
	return filtered, nil
}

// UpdateTask merges the non-nil fields of patch into the stored task.
// userId and createdAt never change. An empty patch returns the task unchanged.
func (s *TaskService) UpdateTask(ctx context.Context, taskID string, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, apperrors.NewInvalidRequest("invalid status", map[string]any{"status": *patch.Status})
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, notFoundOr(err, "task", taskID)
	}
	if patch.Empty() {
		return task, nil
	}

	oldStatus := task.Status
	patch.Apply(task)
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, notFoundOr(err, "task", taskID)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTaskUpdated,
		SubjectID: task.ID,
		Payload: events.TaskUpdatedPayload{
			UserID:    task.UserID,
			OldStatus: oldStatus,
			NewStatus: task.Status,
		},
	})
	return task, nil
}

// DeleteTask removes the task record and its index entry together.
func (s *TaskService) DeleteTask(ctx context.Context, taskID string) error {
	task, err := s.tasks.Delete(ctx, taskID)
	if err != nil {
		return notFoundOr(err, "task", taskID)
	}

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventTaskDeleted,
		SubjectID: task.ID,
		Payload:   events.TaskDeletedPayload{UserID: task.UserID},
	})
	return nil
}

func ownerError(userID, reason string, cause error) error {
	message := "referenced user does not exist"
	if reason == ReasonOwnerUnverified {
		message = "referenced user could not be verified"
	}
	return apperrors.NewValidationError(message, map[string]any{"userId": userID, "reason": reason}, cause)
}
