// Package client provides a typed Go client for the taskdash API. It plays
// the role of the browser application: it keeps the bearer token obtained at
// login and attaches it to every subsequent request. Logout is client-local —
// discarding the token is all there is, since tokens are stateless.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/user/taskdash-go/auth"
	"github.com/user/taskdash-go/tasks"
)

// APIError is a non-2xx response from the API: the status code plus the
// message body the server sent.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client is a taskdash API client bound to one server and, after Login, one
// user session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a Client for the API at baseURL (no trailing slash).
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the currently held bearer token, empty when logged out.
func (c *Client) Token() string {
	return c.token
}

// SetToken installs a token directly, e.g. one restored from storage.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Logout discards the held token. There is nothing to tell the server.
func (c *Client) Logout() {
	c.token = ""
}

// Register creates a new account. It does not log in.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	req := auth.RegisterRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/register", req, nil)
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*auth.LoginResponse, error) {
	req := auth.LoginRequest{Email: email, Password: password}
	var resp auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Me fetches the authenticated user's public profile.
func (c *Client) Me(ctx context.Context) (*auth.PublicUser, error) {
	var resp auth.ProfileResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// CreateTask creates a task owned by the logged-in user.
func (c *Client) CreateTask(ctx context.Context, req tasks.CreateTaskRequest) (*tasks.Task, error) {
	var resp tasks.TaskResponse
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// ListTasks returns the logged-in user's tasks with their count.
func (c *Client) ListTasks(ctx context.Context) (*tasks.ListResponse, error) {
	var resp tasks.ListResponse
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTask applies a partial update to one of the user's tasks.
func (c *Client) UpdateTask(ctx context.Context, id uuid.UUID, req tasks.UpdateTaskRequest) (*tasks.Task, error) {
	var resp tasks.TaskResponse
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id.String(), req, &resp); err != nil {
		return nil, err
	}
	return resp.Task, nil
}

// DeleteTask removes one of the user's tasks.
func (c *Client) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id.String(), nil, nil)
}

// do sends one request: JSON-encodes body when present, attaches the bearer
// token when held, and decodes the response into out. Non-2xx responses come
// back as *APIError carrying the server's message.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		var errBody struct {
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
