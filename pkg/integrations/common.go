package integrations

import (
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

// maxErrorBody bounds how much of an error response is quoted in errors.
const maxErrorBody = 512

// NewHTTPClient creates an HTTP client with the given timeout.
// A zero timeout uses the 15 second default.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
