package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tessro/braid/internal/issue"
)

// RequestTimeout bounds every request/response operation. The push
// channel uses a separate client with no timeout since its read is
// open-ended.
const RequestTimeout = 30 * time.Second

// Client is the HTTP implementation of Backend.
type Client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: RequestTimeout},
		stream:  &http.Client{},
	}
}

// List returns the full collection.
func (c *Client) List(ctx context.Context, includeDeps bool) ([]issue.Issue, error) {
	path := "/issues"
	if includeDeps {
		path += "?includeDeps=true"
	}
	var issues []issue.Issue
	if err := c.do(ctx, "list issues", http.MethodGet, path, nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Get returns a single record.
func (c *Client) Get(ctx context.Context, id string) (issue.Issue, error) {
	var iss issue.Issue
	err := c.do(ctx, "get issue", http.MethodGet, "/issues/"+url.PathEscape(id), nil, &iss)
	return iss, err
}

// Create persists a new issue.
func (c *Client) Create(ctx context.Context, params issue.CreateParams) (issue.Issue, error) {
	var iss issue.Issue
	err := c.do(ctx, "create issue", http.MethodPost, "/issues", params, &iss)
	return iss, err
}

// Update applies a partial update.
func (c *Client) Update(ctx context.Context, id string, patch issue.Patch) (issue.Issue, error) {
	var iss issue.Issue
	err := c.do(ctx, "update issue", http.MethodPatch, "/issues/"+url.PathEscape(id), patch, &iss)
	return iss, err
}

// Close transitions the record to closed and returns the closed
// record. The server keeps it; DELETE is advisory.
func (c *Client) Close(ctx context.Context, id string) (issue.Issue, error) {
	var iss issue.Issue
	err := c.do(ctx, "close issue", http.MethodDelete, "/issues/"+url.PathEscape(id), nil, &iss)
	return iss, err
}

// Ready returns the server-computed ready set.
func (c *Client) Ready(ctx context.Context) ([]issue.Issue, error) {
	var issues []issue.Issue
	if err := c.do(ctx, "ready", http.MethodGet, "/ready", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Blocked returns the server-computed blocked set.
func (c *Client) Blocked(ctx context.Context) ([]issue.Issue, error) {
	var issues []issue.Issue
	if err := c.do(ctx, "blocked", http.MethodGet, "/blocked", nil, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Subscribe opens the push channel: a long-lived GET streaming one
// JSON envelope per line. The returned channel closes when the stream
// ends for any reason; the reconciler owns reconnection.
func (c *Client) Subscribe(ctx context.Context) (<-chan Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/events", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.stream.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("%w: subscribe status %d: %s", ErrUnreachable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	events := make(chan Event, 16)
	go func() {
		defer close(events)
		defer resp.Body.Close()

		decoder := json.NewDecoder(resp.Body)
		for {
			var ev Event
			if err := decoder.Decode(&ev); err != nil {
				if ctx.Err() == nil {
					slog.Debug("push channel closed", "error", err)
				}
				return
			}
			select {
			case <-ctx.Done():
				return
			case events <- ev:
			}
		}
	}()
	return events, nil
}

// do sends a request and decodes the response into out (when non-nil).
// A payload the server refuses becomes a *ValidationError; transport
// failures and server errors wrap ErrUnreachable. Malformed response
// bodies are rejected here rather than propagated into the store.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := errorMessage(respBody)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return NewValidationError(operation, resp.StatusCode, message)
		}
		return fmt.Errorf("%w: %s status %d: %s", ErrUnreachable, operation, resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return NewValidationError(operation, resp.StatusCode, fmt.Sprintf("malformed response: %v", err))
	}
	return nil
}

// errorMessage extracts the server's error string from a JSON body,
// falling back to the raw body.
func errorMessage(body []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return strings.TrimSpace(string(body))
}
