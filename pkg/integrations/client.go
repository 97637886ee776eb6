package integrations

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/matzehuels/tablecast/pkg/errors"
	"github.com/matzehuels/tablecast/pkg/httputil"
	"github.com/matzehuels/tablecast/pkg/observability"
)

// Client provides shared HTTP functionality for service clients.
// It handles retry logic, common request headers and status mapping.
type Client struct {
	http    *http.Client
	headers map[string]string
	policy  httputil.Policy
}

// NewClient creates a Client with the given timeout and default headers.
// Headers are applied to all requests made through this client.
// Pass nil for headers if no default headers are needed.
func NewClient(timeout time.Duration, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(timeout),
		headers: headers,
		policy:  httputil.DefaultPolicy,
	}
}

// SetPolicy replaces the retry policy.
func (c *Client) SetPolicy(p httputil.Policy) { c.policy = p }

// RequestFunc builds a fresh request for one attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// Do sends the request built by newReq and returns the response body of the
// first 2xx response. Network errors, 429 and gateway statuses are retried
// according to the client's policy; other failures return at once.
func (c *Client) Do(ctx context.Context, newReq RequestFunc) ([]byte, error) {
	var body []byte
	err := c.policy.Do(ctx, func() error {
		var err error
		body, err = c.doOnce(ctx, newReq)
		return err
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) doOnce(ctx context.Context, newReq RequestFunc) ([]byte, error) {
	req, err := newReq(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "%s %s", req.Method, host))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, httputil.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response from %s", host))
	}
	if err := checkStatus(resp, data); err != nil {
		return nil, err
	}
	return data, nil
}

func checkStatus(resp *http.Response, body []byte) error {
	code := resp.StatusCode
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return errors.New(errors.ErrCodeUnauthorized, "status %d%s", code, excerpt(body))
	case code == http.StatusTooManyRequests:
		rl := &errors.RateLimitedError{RetryAfter: httputil.RetryAfter(resp.Header)}
		return httputil.Retryable(errors.Wrap(errors.ErrCodeRateLimited, rl, "status %d", code))
	case httputil.RetryableStatus(code):
		return httputil.Retryable(errors.New(errors.ErrCodeNetwork, "status %d%s", code, excerpt(body)))
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d%s", code, excerpt(body))
	}
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return ""
	}
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return fmt.Sprintf(": %s", s)
}
