package asana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the Asana REST API root.
const DefaultBaseURL = "https://app.asana.com/api/1.0"

// taskOptFields selects the task attributes the bot renders and classifies on.
const taskOptFields = "name,notes,completed,due_on,assignee.name,created_at,modified_at,completed_at"

// API is the subset of Asana operations the bot performs.
// Implementations must be safe to discard after a single request; a client
// carries exactly one user's token for its whole lifetime.
type API interface {
	Workspaces(ctx context.Context) ([]Workspace, error)
	Projects(ctx context.Context, workspaceGID string) ([]Project, error)
	ProjectTasks(ctx context.Context, projectGID string) ([]Task, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error)
	UpdateTask(ctx context.Context, taskGID string, fields map[string]string) (*Task, error)
	DeleteTask(ctx context.Context, taskGID string) error
}

// Client is the HTTP wrapper for the Asana REST API. The access token is fixed
// at construction; create a new Client per request rather than swapping tokens.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

// NewClient creates an Asana client authenticated as the token's user.
func NewClient(accessToken string) *Client {
	return &Client{
		baseURL:     DefaultBaseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{},
	}
}

// SetBaseURL overrides the default Asana API URL for testing purposes.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = u
}

// Workspaces lists the workspaces visible to the token.
func (c *Client) Workspaces(ctx context.Context) ([]Workspace, error) {
	var out struct {
		Data []Workspace `json:"data"`
	}
	if err := c.get(ctx, "/workspaces", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Projects lists the projects in a workspace.
func (c *Client) Projects(ctx context.Context, workspaceGID string) ([]Project, error) {
	q := url.Values{}
	q.Set("workspace", workspaceGID)

	var out struct {
		Data []Project `json:"data"`
	}
	if err := c.get(ctx, "/projects", q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// ProjectTasks lists all tasks in a project with the fields the bot needs.
func (c *Client) ProjectTasks(ctx context.Context, projectGID string) ([]Task, error) {
	q := url.Values{}
	q.Set("opt_fields", taskOptFields)

	var out struct {
		Data []Task `json:"data"`
	}
	if err := c.get(ctx, fmt.Sprintf("/projects/%s/tasks", projectGID), q, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// CreateTask creates a task via POST /tasks.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var out struct {
		Data Task `json:"data"`
	}
	if err := c.send(ctx, http.MethodPost, "/tasks", map[string]any{"data": req}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateTask applies a raw field mapping via PUT /tasks/{gid}.
// Fields are passed through unvalidated; Asana rejects unknown keys.
func (c *Client) UpdateTask(ctx context.Context, taskGID string, fields map[string]string) (*Task, error) {
	var out struct {
		Data Task `json:"data"`
	}
	path := fmt.Sprintf("/tasks/%s", taskGID)
	if err := c.send(ctx, http.MethodPut, path, map[string]any{"data": fields}, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteTask deletes a task by gid.
func (c *Client) DeleteTask(ctx context.Context, taskGID string) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%s", taskGID), nil, nil)
}

// get performs an authenticated GET and decodes the response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build asana request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call asana API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("asana API error %d on GET %s: %s", resp.StatusCode, path, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode asana response: %w", err)
	}
	return nil
}

// send performs an authenticated mutating request. A nil out skips decoding.
func (c *Client) send(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal asana request: %w", err)
		}
		body = bytes.NewBuffer(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build asana request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.accessToken))
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call asana API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("asana API error %d on %s %s: %s", resp.StatusCode, method, path, string(raw))
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode asana response: %w", err)
	}
	return nil
}
