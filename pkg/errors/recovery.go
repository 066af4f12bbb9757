package errors

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// -----
// Recovery Functions
// -----

// WithRecover executes a function with panic recovery. Adapter boundaries
// use it so a panicking handler never takes the serving loop down.
func WithRecover(operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			stack := string(debug.Stack())
			logger.Error("panic recovered",
				"operation", operation,
				"panic", r,
				"stack", stack,
			)

			switch v := r.(type) {
			case error:
				err = v
			case string:
				err = errors.New(v)
			default:
				err = fmt.Errorf("panic: %v", v)
			}
		}
	}()

	return fn()
}

// -----
// Retry Mechanisms using retry-go
// -----

// RetryConfig configures retry behavior. Retries apply only to process
// startup (initial backend connectivity); data operations never retry.
type RetryConfig struct {
	MaxAttempts  uint
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultRetryConfig returns sensible defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:  5,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
	}
}

// WithRetry executes a function with backoff retry using retry-go.
func WithRetry(ctx context.Context, operation string, config *RetryConfig, fn func() error) error {
	if config == nil {
		config = DefaultRetryConfig()
	}

	opts := []retry.Option{
		retry.Attempts(config.MaxAttempts),
		retry.Delay(config.InitialDelay),
		retry.MaxDelay(config.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("operation failed, retrying",
				"operation", operation,
				"attempt", n+1,
				"max_attempts", config.MaxAttempts,
				"error", err,
			)
		}),
	}

	if err := retry.Do(fn, opts...); err != nil {
		return core.Unavailable(fmt.Errorf("%s failed after %d attempts: %w", operation, config.MaxAttempts, err))
	}
	return nil
}
