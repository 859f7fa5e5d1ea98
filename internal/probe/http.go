// Package probe: HTTP probe implementation.
package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// newHTTPClient builds the retryable client used by HTTP probes.
// retries is 0 in the default suite, so each check is a single attempt.
func newHTTPClient(timeout time.Duration, retries int) *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.HTTPClient = &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > 5 {
				return fmt.Errorf("too many redirects")
			}
			return nil
		},
	}
	c.RetryMax = retries
	c.RetryWaitMin = 250 * time.Millisecond
	c.RetryWaitMax = 2 * time.Second
	c.Logger = nil
	// The default handler discards the final response when retries are
	// exhausted, turning a reachable 5xx into a transport error. Status
	// handling belongs to the checks, so hand the response through.
	c.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return c
}

// CheckHTTP performs an HTTP GET to url. If expectStatus is 0, any response
// passes: connection success is the criterion, status codes are not
// inspected. A non-zero expectStatus must match exactly.
func CheckHTTP(ctx context.Context, url string, expectStatus int, timeout time.Duration, retries int) (string, error) {
	if url == "" {
		return "", fmt.Errorf("http check: url is required")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "pulse-probe/1.0")

	resp, err := newHTTPClient(timeout, retries).Do(req)
	if err != nil {
		return "Failed to connect", fmt.Errorf("http get %q: %w", url, err)
	}
	defer resp.Body.Close()

	if expectStatus != 0 && resp.StatusCode != expectStatus {
		return fmt.Sprintf("Unexpected status %d", resp.StatusCode),
			fmt.Errorf("expected status %d, got %d", expectStatus, resp.StatusCode)
	}
	return fmt.Sprintf("Service reachable (status %d)", resp.StatusCode), nil
}
