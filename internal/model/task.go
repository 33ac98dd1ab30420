package model

import "time"

// Task is a request-scoped copy of an Asana task. Asana owns the data;
// nothing here is persisted.
type Task struct {
	GID         string     // Asana task gid
	Name        string     // Task title
	Notes       string     // Free-form description (optional)
	Completed   bool       // Completion flag
	DueOn       string     // Calendar date "2006-01-02", empty when unset
	Assignee    *Assignee  // Assigned user (optional)
	CreatedAt   *time.Time // Creation timestamp (optional)
	ModifiedAt  *time.Time // Last modification timestamp (optional)
	CompletedAt *time.Time // Completion timestamp (optional)
}

// Assignee is the user a task is assigned to.
type Assignee struct {
	GID  string
	Name string
}

// Project is a named container of tasks within a workspace.
type Project struct {
	GID  string
	Name string
}

// Workspace is the top-level grouping scoping all projects and tasks.
type Workspace struct {
	GID  string
	Name string
}
