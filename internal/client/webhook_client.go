package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/taskboard/taskboard/internal/events"
)

const webhookName = "activity-webhook"

// WebhookClient posts domain events as JSON to a single endpoint.
type WebhookClient struct {
	url     string
	timeout time.Duration
	logger  *zap.Logger
}

// NewWebhookClient constructs a client delivering to url.
func NewWebhookClient(url string, timeout time.Duration, logger *zap.Logger) *WebhookClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookClient{url: url, timeout: timeout, logger: logger}
}

// Deliver sends one event. Any 2xx counts as delivered.
func (c *WebhookClient) Deliver(ctx context.Context, event events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent := fiber.Post(c.url)
	agent.Timeout(callTimeout(ctx, c.timeout))
	agent.JSON(event)
	code, _, errs := agent.Bytes()
	if err := joinErrors(errs); err != nil {
		return fmt.Errorf("deliver %s %s: %w", event.Type, event.SubjectID, err)
	}
	if code < 200 || code > 299 {
		return &StatusError{Service: webhookName, Code: code}
	}
	c.logger.Debug("webhook delivered",
		zap.String("event_type", string(event.Type)),
		zap.String("subject_id", event.SubjectID))
	return nil
}
