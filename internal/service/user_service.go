package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/domain"
	"github.com/taskboard/taskboard/internal/events"
	"github.com/taskboard/taskboard/internal/repository"
	apperrors "github.com/taskboard/taskboard/pkg/util/errorutil"
)

// TaskLister lists a user's tasks through the task service.
type TaskLister interface {
	ListTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error)
}

// UserService owns user records and serves the composite user view.
type UserService struct {
	users      repository.UserRepository
	tasks      TaskLister
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Tasks      TaskLister
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      deps.UserRepo,
		tasks:      deps.Tasks,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// CreateUser stores a new user. Email uniqueness is not enforced.
func (s *UserService) CreateUser(ctx context.Context, name, email string) (*domain.User, error) {
	user := &domain.User{Name: name, Email: email}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{Type: events.EventUserCreated, SubjectID: user.ID})
	return user, nil
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user", userID)
	}
	return user, nil
}

// ReplaceUser overwrites name and email wholesale, unlike the merge applied
// to tasks. createdAt is kept.
func (s *UserService) ReplaceUser(ctx context.Context, userID, name, email string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user", userID)
	}
	user.Name = name
	user.Email = email
	if err := s.users.Update(ctx, user); err != nil {
		return nil, notFoundOr(err, "user", userID)
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{Type: events.EventUserUpdated, SubjectID: user.ID})
	return user, nil
}

// DeleteUser removes the user record only; the user's tasks and index stay.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return notFoundOr(err, "user", userID)
	}
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:      events.EventUserDeleted,
		SubjectID: userID,
		Payload:   events.UserDeletedPayload{OrphanedTaskIndex: repository.IndexKey(userID)},
	})
	return nil
}

// GetUserWithTasks reads the user and asks the task service for its tasks.
// Any task-service failure other than a clean not-found is a DependencyError.
func (s *UserService) GetUserWithTasks(ctx context.Context, userID string) (*domain.UserWithTasks, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(err, "user", userID)
	}

	tasks, err := s.tasks.ListTasks(ctx, userID, nil)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": userID})
	}
	if err != nil {
		return nil, apperrors.NewDependencyError("task-service", err)
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return &domain.UserWithTasks{User: user, Tasks: tasks}, nil
}
