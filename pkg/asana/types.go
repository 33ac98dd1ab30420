package asana

import "time"

// Workspace is the Asana workspace object.
type Workspace struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Project is the Asana project object.
type Project struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// UserRef is a reference to an Asana user in nested structures.
type UserRef struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Task is the Asana task object, restricted to the opt_fields this service requests.
type Task struct {
	GID         string     `json:"gid"`
	Name        string     `json:"name"`
	Notes       string     `json:"notes"`
	Completed   bool       `json:"completed"`
	DueOn       string     `json:"due_on"`
	Assignee    *UserRef   `json:"assignee"`
	CreatedAt   *time.Time `json:"created_at"`
	ModifiedAt  *time.Time `json:"modified_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

// CreateTaskRequest is the payload for POST /tasks.
// Empty optional fields are omitted from the wire format.
type CreateTaskRequest struct {
	Name      string   `json:"name"`
	Notes     string   `json:"notes,omitempty"`
	DueOn     string   `json:"due_on,omitempty"`
	Assignee  string   `json:"assignee,omitempty"`
	Workspace string   `json:"workspace,omitempty"`
	Projects  []string `json:"projects,omitempty"`
}
