package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned for backend connection failures.
var ErrNetwork = errors.New("network error")

// RetryableError marks a failure worth another try.
type RetryableError struct{ Err error }

// Retryable wraps err so that [Backoff.Do] retries it. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff retries an operation with exponentially growing pauses.
type Backoff struct {
	Attempts int           // total calls, at least 1
	Delay    time.Duration // pause after the first failure; doubles each time
}

// DefaultBackoff is used by the Redis cache.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 200 * time.Millisecond}

// Do calls fn until it succeeds, returns an error not marked [Retryable],
// or runs out of attempts. The last error is returned unwrapped from its
// RetryableError.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	attempts := max(b.Attempts, 1)
	delay := b.Delay

	var err error
	for i := range attempts {
		if err = fn(); err == nil {
			return nil
		}
		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		err = re.Err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
