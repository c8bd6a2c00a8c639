// Package repo implements the repository client capability for the Modrinth
// and Hangar repositories, plus the CurseForge stub, over a shared retrying
// HTTP core.
package repo

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.mup.dev/mup/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	userAgent         = "mup (go.mup.dev/mup)"
	httpClientTimeout = 30 * time.Second

	// Transient failures are retried with bounded exponential backoff before
	// surfacing domain.ErrNetwork.
	maxAttempts    = 3
	initialBackoff = 250 * time.Millisecond
)

// httpDoer lets tests substitute the transport.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// retryClient is the HTTP core shared by every repository variant: it sets
// the user agent, classifies status codes into the error taxonomy and retries
// transient failures.
type retryClient struct {
	client httpDoer
}

func newRetryClient() *retryClient {
	return &retryClient{client: &http.Client{Timeout: httpClientTimeout}}
}

// get issues a GET and returns the response body reader. Retries happen here;
// callers see domain.ErrNetwork only after retry exhaustion.
func (c *retryClient) get(ctx context.Context, url string) (io.ReadCloser, error) {
	backoff := initialBackoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		body, retryable, err := c.getOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, zerr.Wrap(ctx.Err(), domain.ErrCancelled.Error())
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	return nil, zerr.With(lastErr, "attempts", maxAttempts)
}

// getOnce performs a single request. The second return reports whether the
// failure is transient.
func (c *retryClient) getOnce(ctx context.Context, url string) (io.ReadCloser, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to build request"), "url", url)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, zerr.Wrap(ctx.Err(), domain.ErrCancelled.Error())
		}
		netErr := zerr.With(domain.ErrNetwork, "cause", err.Error())
		return nil, true, zerr.With(netErr, "url", url)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, false, nil
	case resp.StatusCode == http.StatusNotFound:
		_ = resp.Body.Close()
		return nil, false, zerr.With(domain.ErrNotFound, "url", url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		_ = resp.Body.Close()
		netErr := zerr.With(domain.ErrNetwork, "status_code", resp.StatusCode)
		return nil, true, zerr.With(netErr, "url", url)
	default:
		_ = resp.Body.Close()
		unavailErr := zerr.With(domain.ErrRepositoryUnavailable, "status_code", resp.StatusCode)
		return nil, false, zerr.With(unavailErr, "url", url)
	}
}

// HTTPClient exposes the retrying GET core to adapters outside this package
// that talk to loader distribution endpoints.
type HTTPClient struct {
	c *retryClient
}

// NewHTTPClient creates an HTTPClient with the default transport.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{c: newRetryClient()}
}

// Get issues a GET and returns the response body reader.
func (h *HTTPClient) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	return h.c.get(ctx, url)
}

// GetJSON issues a GET and decodes the JSON response into out.
func (h *HTTPClient) GetJSON(ctx context.Context, url string, out any) error {
	return h.c.getJSON(ctx, url, out)
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *retryClient) getJSON(ctx context.Context, url string, out any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer body.Close() //nolint:errcheck // Best effort close in defer

	data, err := io.ReadAll(body)
	if err != nil {
		netErr := zerr.With(domain.ErrNetwork, "cause", err.Error())
		return zerr.With(netErr, "url", url)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to parse repository response"), "url", url)
	}
	return nil
}
