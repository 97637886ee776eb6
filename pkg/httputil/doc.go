// Package httputil provides HTTP retry helpers for the report collaborators.
//
// # Retry
//
// [Policy.Do] wraps requests with automatic retry for transient
// failures:
//
//   - Network errors
//   - 500, 502, 503 and 504 server errors
//   - 429 rate limit responses
//
// Callers mark an error as transient by wrapping it with [Retryable]; any
// other error stops the loop at once:
//
//	err := httputil.DefaultPolicy.Do(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    defer resp.Body.Close()
//	    if httputil.RetryableStatus(resp.StatusCode) {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    return nil
//	})
//
// # Configuration
//
// [DefaultPolicy] is suitable for most use cases:
//
//   - Attempts: 4 (one call plus three retries)
//   - Base backoff: 500ms, doubling per retry
//   - Maximum backoff: 30s
//
// A 429 response wrapped as an errors.RateLimitedError with a Retry-After
// value waits at least that many seconds before the next attempt.
package httputil
