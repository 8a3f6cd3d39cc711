// Package client holds the synchronous HTTP clients the two services use to
// reach each other. Every call carries an explicit timeout; nothing is retried.
package client

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// StatusError reports an unexpected status code from a peer service.
type StatusError struct {
	Service string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Service, e.Code)
}

// callTimeout bounds a call by the configured timeout and the caller's deadline.
func callTimeout(ctx context.Context, configured time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return configured
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		// the agent treats a non-positive timeout as unbounded
		return time.Millisecond
	}
	if remaining < configured {
		return remaining
	}
	return configured
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
