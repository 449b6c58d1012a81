package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/frage-dev/frage/pkg/api"
	"github.com/frage-dev/frage/pkg/observability"
)

// Get performs an authenticated GET against the given relative path and
// decodes the JSON response body into R.
func Get[R any](ctx context.Context, c *Client, path string) (*R, error) {
	return do[R](ctx, c, http.MethodGet, path, "", nil)
}

// Delete performs an authenticated DELETE against the given relative path
// and decodes the JSON response body into R.
func Delete[R any](ctx context.Context, c *Client, path string) (*R, error) {
	return do[R](ctx, c, http.MethodDelete, path, "", nil)
}

// PostJSON performs an authenticated POST with a JSON-encoded body and
// decodes the JSON response body into R.
func PostJSON[T, R any](ctx context.Context, c *Client, path string, body *T) (*R, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("encoding request body: %s", err))
	}
	return do[R](ctx, c, http.MethodPost, path, "application/json", bytes.NewReader(encoded))
}

// PostForm performs an authenticated POST with a pre-encoded body (e.g. a
// multipart form) and decodes the JSON response body into R. contentType
// must describe the body encoding, including any multipart boundary.
func PostForm[R any](ctx context.Context, c *Client, path, contentType string, body io.Reader) (*R, error) {
	return do[R](ctx, c, http.MethodPost, path, contentType, body)
}

// GetRaw performs an authenticated GET and returns the raw response body.
// Used for endpoints that serve file content rather than JSON.
func GetRaw(ctx context.Context, c *Client, path string) ([]byte, error) {
	resp, err := c.send(ctx, c.httpClient, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, api.ErrorFromResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.NewTransportError(err)
	}
	return raw, nil
}

// do issues one request and classifies the outcome: decoded value on 2xx,
// API error from the body on non-2xx, transport error on network failure,
// decode error when a 2xx body does not match R. Exactly one attempt is
// made; retry policy belongs to the caller.
func do[R any](ctx context.Context, c *Client, method, path, contentType string, body io.Reader) (*R, error) {
	resp, err := c.send(ctx, c.httpClient, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, api.ErrorFromResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, api.NewTransportError(err)
	}

	var result R
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, api.NewDecodeError(err)
	}
	return &result, nil
}

// send builds the authenticated request, dispatches it on hc, and records
// request metrics. The caller owns the response body.
func (c *Client) send(ctx context.Context, hc *http.Client, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpointURL(path), body)
	if err != nil {
		return nil, api.NewConfigError(fmt.Sprintf("building request: %s", err))
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.organization != "" {
		req.Header.Set("OpenAI-Organization", c.organization)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := hc.Do(req)
	observability.RequestDuration.WithLabelValues(method, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.RequestsTotal.WithLabelValues(method, endpoint, "error").Inc()
		return nil, api.NewTransportError(err)
	}

	observability.RequestsTotal.WithLabelValues(method, endpoint, statusClass(resp.StatusCode)).Inc()
	return resp, nil
}

// statusClass buckets an HTTP status code into "2xx", "4xx", etc.
func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
