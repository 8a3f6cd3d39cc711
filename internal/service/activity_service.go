package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/events"
)

// ActivitySink forwards domain events outside the process.
type ActivitySink interface {
	Deliver(ctx context.Context, event events.Event) error
}

// ActivityService records domain events emitted by the task and user services.
type ActivityService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	sink       ActivitySink
}

// NewActivityService creates the service. sink may be nil, in which case
// events are only logged.
func NewActivityService(dispatcher events.Dispatcher, logger *zap.Logger, sink ActivitySink) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActivityService{
		dispatcher: dispatcher,
		logger:     logger,
		sink:       sink,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTaskCreated, a.handleTaskEvent)
	a.dispatcher.Subscribe(events.EventTaskUpdated, a.handleTaskEvent)
	a.dispatcher.Subscribe(events.EventTaskDeleted, a.handleTaskEvent)
	a.dispatcher.Subscribe(events.EventUserCreated, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventUserUpdated, a.handleUserEvent)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handleUserDeleted)
}

func (a *ActivityService) handleTaskEvent(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("task_id", event.SubjectID), zap.Any("payload", event.Payload))
	a.forward(ctx, event)
	return nil
}

func (a *ActivityService) handleUserEvent(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), zap.String("user_id", event.SubjectID))
	a.forward(ctx, event)
	return nil
}

func (a *ActivityService) handleUserDeleted(ctx context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("user_id", event.SubjectID),
		zap.Any("payload", event.Payload))
	a.forward(ctx, event)
	return nil
}

// forward hands the event to the sink. Delivery failures never reach the
// publisher.
func (a *ActivityService) forward(ctx context.Context, event events.Event) {
	if a.sink == nil {
		return
	}
	if err := a.sink.Deliver(ctx, event); err != nil {
		a.logger.Warn("activity delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
