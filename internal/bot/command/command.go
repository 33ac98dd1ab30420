package command

import "asana-chatbot/internal/bot/status"

// Kind identifies which grammar rule a message matched.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindConnect
	KindCreateTask
	KindUpdateTask
	KindDeleteTask
	KindListTasks
)

// Command is the parsed form of one chat message. Exactly one payload field is
// set, matching Kind; a Command is immutable once built.
type Command struct {
	Kind   Kind
	Create *CreateTask
	Update *UpdateTask
	Delete *DeleteTask
	List   *ListTasks
}

// CreateTask carries the fields of a "create task in ..." message.
// Optional fields are empty strings when the message omitted them.
type CreateTask struct {
	ProjectName string
	Name        string
	Notes       string
	DueOn       string
	Assignee    string
}

// UpdateTask carries a task id and a raw field mapping from key=value tokens.
type UpdateTask struct {
	TaskID string
	Fields map[string]string
}

// DeleteTask carries the id of the task to delete.
type DeleteTask struct {
	TaskID string
}

// ListTasks carries a project name and the status filter to apply.
type ListTasks struct {
	ProjectName string
	Status      status.Filter
}
