// Package client provides an HTTP client for the portfolio JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"portfolio/internal/comments"
	"portfolio/internal/contact"
	"portfolio/internal/github"
	"portfolio/internal/subscribe"
)

// APIError is a non-2xx answer from the server. Message is the
// envelope's "error" field, or the status text when there is none.
type APIError struct {
	Status  int
	Message string
	Details any
}

func (e *APIError) Error() string {
	return e.Message
}

// Client is an HTTP client for the portfolio API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client. Requests carry no timeout of their own; callers
// bound them through the context if they need to.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{})
}

func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListComments returns every comment, newest first.
func (c *Client) ListComments(ctx context.Context) ([]comments.Comment, error) {
	var out []comments.Comment
	if err := c.get(ctx, "/api/comments", &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []comments.Comment{}
	}
	return out, nil
}

// CreateComment posts a comment and returns the stored record.
func (c *Client) CreateComment(ctx context.Context, name, message string) (*comments.Comment, error) {
	body := map[string]string{"name": name, "message": message}
	var out comments.Comment
	if err := c.post(ctx, "/api/comments", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Contact(ctx context.Context, req contact.Request) (*contact.Response, error) {
	var out contact.Response
	if err := c.post(ctx, "/api/contact", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Subscribe(ctx context.Context, email string) (*subscribe.Response, error) {
	var out subscribe.Response
	if err := c.post(ctx, "/api/subscribe", subscribe.Request{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Contributions(ctx context.Context) (*github.Calendar, error) {
	var out github.Calendar
	if err := c.get(ctx, "/api/github-contributions", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return c.do(req, result)
}

func (c *Client) post(ctx context.Context, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, result)
}

func (c *Client) do(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope struct {
			Error   string `json:"error"`
			Details any    `json:"details"`
		}
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			apiErr.Details = envelope.Details
		} else {
			apiErr.Message = fmt.Sprintf("server error: %s", http.StatusText(resp.StatusCode))
		}
		return apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
