// Package probe: Ollama version probe.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// versionResponse is the body of Ollama's GET /api/version.
type versionResponse struct {
	Version string `json:"version"`
}

// CheckOllamaVersion performs an HTTP GET against an Ollama /api/version
// endpoint. Connection success is the pass criterion; the body is decoded
// leniently to enrich the success message and a decode failure is not an
// error.
func CheckOllamaVersion(ctx context.Context, url string, timeout time.Duration, retries int) (string, error) {
	if url == "" {
		return "", fmt.Errorf("ollama check: url is required")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "No Ollama connection", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "pulse-probe/1.0")

	resp, err := newHTTPClient(timeout, retries).Do(req)
	if err != nil {
		return "No Ollama connection", fmt.Errorf("ollama get %q: %w", url, err)
	}
	defer resp.Body.Close()

	var v versionResponse
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(body, &v) == nil && v.Version != "" {
		return fmt.Sprintf("Connected to Ollama (version %s)", v.Version), nil
	}
	return "Connected to Ollama", nil
}
