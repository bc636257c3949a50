// Package retry implements the bounded exponential-backoff controller that
// wraps every durable write. Connectivity-class failures are retried with a
// strictly serialized backoff; everything else propagates on first occurrence.
package retry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dailycount/stockledger-service/pkg/errs"
	"github.com/dailycount/stockledger-service/pkg/logger"
)

// ErrExhausted marks a write whose retry budget ran out. Callers stash the
// payload in the local backup cache when they see it.
var ErrExhausted = errors.New("retry budget exhausted")

// transientMarkers is the message-substring fallback for errors that arrive
// untagged from drivers and transports.
var transientMarkers = []string{
	"connection",
	"network",
	"timeout",
	"unavailable",
	"deadline exceeded",
	"aborted",
	"broken pipe",
	"i/o timeout",
	"no such host",
}

type Controller struct {
	maxAttempts int
	ceiling     time.Duration
	sleep       func(time.Duration)
	logger      logger.ZapLogger
}

type Option func(*Controller)

// WithSleep substitutes the inter-attempt wait. Tests inject a recorder so no
// wall-clock time passes.
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Controller) { c.sleep = fn }
}

func NewController(maxAttempts int, ceiling time.Duration, log logger.ZapLogger, opts ...Option) *Controller {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	c := &Controller{
		maxAttempts: maxAttempts,
		ceiling:     ceiling,
		sleep:       time.Sleep,
		logger:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) MaxAttempts() int { return c.maxAttempts }

// Do runs op up to maxAttempts times. Attempts are sequential: attempt n+1
// never starts before attempt n's backoff has fully elapsed. A non-retryable
// failure propagates immediately; exhaustion returns a transient error
// wrapping ErrExhausted and the last attempt's failure.
func (c *Controller) Do(ctx context.Context, label string, op func(context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		c.logger.Debug("write attempt",
			zap.String("op", label),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts))
		err := op(ctx)
		if err == nil {
			if attempt > 1 {
				c.logger.Info("write succeeded after retry",
					zap.String("op", label),
					zap.Int("attempt", attempt))
			}
			return nil
		}

		if !Retryable(err) {
			c.logger.Error("write failed, not retryable",
				zap.String("op", label),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return err
		}

		lastErr = err
		c.logger.Warn("write attempt failed",
			zap.String("op", label),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Error(err))

		if attempt < c.maxAttempts {
			c.sleep(c.Backoff(attempt))
		}
	}

	return errs.Wrap(errs.KindTransient, label,
		&exhaustedError{attempts: c.maxAttempts, last: lastErr})
}

// Backoff returns the wait after the n-th failed attempt: 2^n seconds capped
// at the configured ceiling.
func (c *Controller) Backoff(attempt int) time.Duration {
	d := time.Duration(1<<uint(attempt)) * time.Second
	if c.ceiling > 0 && d > c.ceiling {
		d = c.ceiling
	}
	return d
}

// Retryable classifies err as a connectivity-class failure worth retrying.
// Validation, permission, and auth failures are always fatal.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	switch errs.KindOf(err) {
	case errs.KindValidation, errs.KindBusinessRule, errs.KindPermission, errs.KindAuth, errs.KindNotFound:
		return false
	case errs.KindTransient:
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

type exhaustedError struct {
	attempts int
	last     error
}

func (e *exhaustedError) Error() string {
	return fmt.Sprintf("%s after %d attempts: %v", ErrExhausted.Error(), e.attempts, e.last)
}

func (e *exhaustedError) Is(target error) bool { return target == ErrExhausted }

func (e *exhaustedError) Unwrap() error { return e.last }
