package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// HTTPError reports a non-2xx response. The body is discarded; callers
// only get the status code, matching the app's API contract.
type HTTPError struct {
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: status %d", e.Status)
}

// NetworkError wraps a transport-level failure (DNS, connect, timeout).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "network error: " + e.Err.Error() }
func (e *NetworkError) Unwrap() error { return e.Err }

// Client issues JSON requests against the application backend.
// Failures are logged and normalized into HTTPError/NetworkError.
// No retries: re-submission is always user-initiated.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// Do performs a request and returns the raw JSON body. Relative paths are
// resolved against BaseURL; absolute URLs pass through untouched.
func (c *Client) Do(ctx context.Context, method, url string, body []byte) (json.RawMessage, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(url), reader)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		c.log("fetch failed", "url", url, "error", err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log("fetch failed", "url", url, "status", resp.StatusCode)
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log("fetch decode failed", "url", url, "error", err)
		return nil, &NetworkError{Err: err}
	}
	return raw, nil
}

// GetData fetches url and unmarshals the "data" field of the response
// envelope into v.
func (c *Client) GetData(ctx context.Context, url string, v any) error {
	raw, err := c.Do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, v)
}

func (c *Client) resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return c.BaseURL + "/" + strings.TrimLeft(url, "/")
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) log(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Error(msg, args...)
	}
}
