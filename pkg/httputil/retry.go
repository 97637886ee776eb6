package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	tcerrors "github.com/matzehuels/tablecast/pkg/errors"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network errors, 429 and gateway responses) with
// this type so that [Policy.Do] knows to attempt the operation again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Policy bounds a retry loop.
type Policy struct {
	Attempts int           // total calls, including the first
	Delay    time.Duration // wait before the first retry
	MaxDelay time.Duration // cap for the doubled delay; 0 means uncapped
}

// DefaultPolicy makes one call plus three retries, waiting 0.5s, 1s and 2s.
var DefaultPolicy = Policy{
	Attempts: 4,
	Delay:    500 * time.Millisecond,
	MaxDelay: 30 * time.Second,
}

// Do executes fn up to p.Attempts times with exponential backoff.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. The delay doubles after each failed attempt. A
// rate-limited error carrying a Retry-After hint waits at least that long,
// still bounded by MaxDelay.
// Returns the last error if all attempts fail, or ctx.Err() if cancelled.
func (p Policy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !isRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.wait(delay, lastErr)):
				delay *= 2
				if p.MaxDelay > 0 && delay > p.MaxDelay {
					delay = p.MaxDelay
				}
			}
		}
	}
	return lastErr
}

// wait returns how long to sleep before the next attempt.
func (p Policy) wait(delay time.Duration, err error) time.Duration {
	var rl *tcerrors.RateLimitedError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		delay = max(delay, time.Duration(rl.RetryAfter)*time.Second)
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

func isRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// RetryableStatus reports whether an HTTP status code is worth retrying:
// 429 and 500, 502, 503, 504.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// RetryAfter parses a Retry-After header holding a number of seconds.
// It returns 0 when the header is absent or not a number.
func RetryAfter(h http.Header) int {
	n, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
