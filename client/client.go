// Package client provides a typed HTTP client for the review API and a
// session controller that mirrors server state for an interactive frontend.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Session is the client-side view of a review session.
type Session struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Review    string    `json:"review"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SubmitResult is the response to a review submission.
type SubmitResult struct {
	ID     string `json:"id"`
	Review string `json:"review"`
}

// APIError is a non-2xx response decoded into its status and message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client talks to the review API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

// SubmitReview sends code for review and returns the created session's id
// and review text.
func (c *Client) SubmitReview(ctx context.Context, code string) (*SubmitResult, error) {
	var result SubmitResult
	if err := c.do(ctx, http.MethodPost, "/review", map[string]string{"code": code}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListSessions fetches the full review history, newest-first.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var sessions []Session
	if err := c.do(ctx, http.MethodGet, "/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a single session by id.
func (c *Client) GetSession(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := c.do(ctx, http.MethodGet, "/sessions/"+id, nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession overwrites the provided fields of a session.
func (c *Client) UpdateSession(ctx context.Context, id string, code, review *string) (*Session, error) {
	body := map[string]*string{}
	if code != nil {
		body["code"] = code
	}
	if review != nil {
		body["review"] = review
	}

	var session Session
	if err := c.do(ctx, http.MethodPut, "/sessions/"+id, body, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession deletes a session by id.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/sessions/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var errBody struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
