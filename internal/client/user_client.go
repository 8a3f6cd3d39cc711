package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const userServiceName = "user-service"

// UserClient asks the user service whether a user exists.
type UserClient struct {
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewUserClient constructs a client for the user service rooted at baseURL.
func NewUserClient(baseURL string, timeout time.Duration, logger *zap.Logger) *UserClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserClient{baseURL: baseURL, timeout: timeout, logger: logger}
}

// UserExists reports whether GET /users/{id} answers 200. A 404 is a definite
// false; transport failures and any other status come back as errors.
func (c *UserClient) UserExists(ctx context.Context, userID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	agent := fiber.Get(fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(userID)))
	agent.Timeout(callTimeout(ctx, c.timeout))
	code, _, errs := agent.Bytes()
	if err := joinErrors(errs); err != nil {
		c.logger.Warn("user lookup failed", zap.String("user_id", userID), zap.Error(err))
		return false, fmt.Errorf("get user %s: %w", userID, err)
	}

	switch code {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		c.logger.Warn("user lookup unexpected status", zap.String("user_id", userID), zap.Int("status", code))
		return false, &StatusError{Service: userServiceName, Code: code}
	}
}
