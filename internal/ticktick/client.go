// Package ticktick is a client for the TickTick Open API v1, the task
// store this service mutates on behalf of voice commands.
package ticktick

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"taskvoice/internal/models"
)

const (
	// DefaultBaseURL is the production TickTick Open API endpoint
	DefaultBaseURL = "https://api.ticktick.com/open/v1"
	// DefaultTimeout bounds a single round trip; a voice platform expects
	// an answer within a few seconds, so long waits are pointless.
	DefaultTimeout = 3 * time.Second
)

// Client calls the TickTick Open API with a per-user access token.
// A Client is created per request; tasks are never cached across
// requests since the user may edit them concurrently from other clients.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option customizes a Client
type Option func(*Client)

// WithBaseURL points the client at a non-default API endpoint (tests)
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a task-store client for the given access token
func NewClient(accessToken string, opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		token:      accessToken,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetProjects returns all user projects
func (c *Client) GetProjects(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	if err := c.doJSON(ctx, http.MethodGet, "/project", nil, &projects); err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	return projects, nil
}

// GetTasks returns all tasks in a project
func (c *Client) GetTasks(ctx context.Context, projectID string) ([]models.Task, error) {
	var data struct {
		Tasks []models.Task `json:"tasks"`
	}
	path := fmt.Sprintf("/project/%s/data", projectID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, fmt.Errorf("failed to get tasks for project %s: %w", projectID, err)
	}
	return data.Tasks, nil
}

// AllTasks returns every task across all of the user's projects. Fetched
// fresh per request; staleness is bounded to edits made mid-request.
func (c *Client) AllTasks(ctx context.Context) ([]models.Task, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}

	var all []models.Task
	for _, p := range projects {
		tasks, err := c.GetTasks(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		all = append(all, tasks...)
	}
	return all, nil
}

// GetTask returns a single task by id
func (c *Client) GetTask(ctx context.Context, projectID, taskID string) (*models.Task, error) {
	var task models.Task
	path := fmt.Sprintf("/project/%s/task/%s", projectID, taskID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %s: %w", taskID, err)
	}
	return &task, nil
}

// CreateTask creates a new task
func (c *Client) CreateTask(ctx context.Context, payload *models.TaskCreate) (*models.Task, error) {
	var task models.Task
	if err := c.doJSON(ctx, http.MethodPost, "/task", payload, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// UpdateTask applies a partial update; only non-nil fields change
func (c *Client) UpdateTask(ctx context.Context, payload *models.TaskUpdate) (*models.Task, error) {
	var task models.Task
	path := fmt.Sprintf("/task/%s", payload.ID)
	if err := c.doJSON(ctx, http.MethodPost, path, payload, &task); err != nil {
		return nil, fmt.Errorf("failed to update task %s: %w", payload.ID, err)
	}
	return &task, nil
}

// CompleteTask marks a task as completed
func (c *Client) CompleteTask(ctx context.Context, projectID, taskID string) error {
	path := fmt.Sprintf("/project/%s/task/%s/complete", projectID, taskID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("failed to complete task %s: %w", taskID, err)
	}
	return nil
}

// DeleteTask removes a task permanently
func (c *Client) DeleteTask(ctx context.Context, projectID, taskID string) error {
	path := fmt.Sprintf("/project/%s/task/%s", projectID, taskID)
	if err := c.doJSON(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", taskID, err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
