package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"asana-chatbot/internal/bot"
	"asana-chatbot/internal/bot/usecase"
	"asana-chatbot/internal/model"
	"asana-chatbot/pkg/asana"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, args ...interface{})                  {}
func (nopLogger) Debugf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Info(ctx context.Context, args ...interface{})                   {}
func (nopLogger) Infof(ctx context.Context, format string, args ...interface{})   {}
func (nopLogger) Warn(ctx context.Context, args ...interface{})                   {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...interface{})   {}
func (nopLogger) Error(ctx context.Context, args ...interface{})                  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) DPanic(ctx context.Context, args ...interface{})                 {}
func (nopLogger) DPanicf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Panic(ctx context.Context, args ...interface{})                  {}
func (nopLogger) Panicf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Fatal(ctx context.Context, args ...interface{})                  {}
func (nopLogger) Fatalf(ctx context.Context, format string, args ...interface{})  {}

type mockAuth struct {
	tokens       map[string]string
	exchangeErr  error
	exchanged    []string
	authURLCalls int
}

func (m *mockAuth) AuthorizationURL(userID string) string {
	m.authURLCalls++
	return "https://app.asana.com/-/oauth_authorize?state=" + userID
}

func (m *mockAuth) ExchangeCode(ctx context.Context, code, state string) error {
	if m.exchangeErr != nil {
		return m.exchangeErr
	}
	m.exchanged = append(m.exchanged, state)
	return nil
}

func (m *mockAuth) Token(ctx context.Context, userID string) (string, error) {
	tok, ok := m.tokens[userID]
	if !ok {
		return "", bot.ErrAuthMissing
	}
	return tok, nil
}

type mockAPI struct {
	workspaces    []asana.Workspace
	workspacesErr error
	projects      []asana.Project
	projectsErr   error
	tasks         []asana.Task
	tasksErr      error
	createErr     error
	updateErr     error
	deleteErr     error

	created []asana.CreateTaskRequest
	updated map[string]map[string]string
	deleted []string
}

func (m *mockAPI) Workspaces(ctx context.Context) ([]asana.Workspace, error) {
	return m.workspaces, m.workspacesErr
}

func (m *mockAPI) Projects(ctx context.Context, workspaceGID string) ([]asana.Project, error) {
	return m.projects, m.projectsErr
}

func (m *mockAPI) ProjectTasks(ctx context.Context, projectGID string) ([]asana.Task, error) {
	return m.tasks, m.tasksErr
}

func (m *mockAPI) CreateTask(ctx context.Context, req asana.CreateTaskRequest) (*asana.Task, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = append(m.created, req)
	return &asana.Task{GID: "new", Name: req.Name}, nil
}

func (m *mockAPI) UpdateTask(ctx context.Context, taskGID string, fields map[string]string) (*asana.Task, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	if m.updated == nil {
		m.updated = make(map[string]map[string]string)
	}
	m.updated[taskGID] = fields
	return &asana.Task{GID: taskGID}, nil
}

func (m *mockAPI) DeleteTask(ctx context.Context, taskGID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, taskGID)
	return nil
}

func newFixture(api *mockAPI) (bot.UseCase, *mockAuth) {
	auth := &mockAuth{tokens: map[string]string{"u1": "tok"}}
	uc := usecase.New(nopLogger{}, auth, func(token string) asana.API { return api })
	return uc, auth
}

func handle(t *testing.T, uc bot.UseCase, text string) string {
	t.Helper()
	out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "u1", Username: "alice"}, bot.MessageInput{Text: text})
	if err != nil {
		t.Fatalf("HandleMessage returned error: %v", err)
	}
	return out.Reply
}

func defaultAPI() *mockAPI {
	return &mockAPI{
		workspaces: []asana.Workspace{{GID: "ws1", Name: "Acme"}},
		projects:   []asana.Project{{GID: "p1", Name: "Marketing"}, {GID: "p2", Name: "Launch"}},
	}
}

func TestHandleMessageNoToken(t *testing.T) {
	uc, _ := newFixture(defaultAPI())

	for _, text := range []string{"get project tasks in Launch", "banana", "connect asana"} {
		out, err := uc.HandleMessage(context.Background(), model.Scope{UserID: "unknown"}, bot.MessageInput{Text: text})
		if err != nil {
			t.Fatalf("HandleMessage returned error: %v", err)
		}
		if !strings.Contains(out.Reply, "connect asana") {
			t.Errorf("reply %q should direct the user to connect", out.Reply)
		}
		if !strings.Contains(out.Reply, "state=unknown") {
			t.Errorf("reply %q should embed the authorization url", out.Reply)
		}
	}
}

func TestHandleMessageConnect(t *testing.T) {
	uc, _ := newFixture(defaultAPI())
	reply := handle(t, uc, "connect asana")
	if !strings.Contains(reply, "https://app.asana.com/-/oauth_authorize?state=u1") {
		t.Errorf("reply %q should contain the authorization url", reply)
	}
}

func TestHandleMessageWorkspaceFailure(t *testing.T) {
	api := defaultAPI()
	api.workspacesErr = errors.New("boom")
	uc, _ := newFixture(api)

	reply := handle(t, uc, "get project tasks in Launch")
	if !strings.Contains(reply, "Could not resolve") {
		t.Errorf("reply = %q, want workspace error", reply)
	}

	api.workspacesErr = nil
	api.workspaces = nil
	if reply := handle(t, uc, "banana"); !strings.Contains(reply, "Could not resolve") {
		t.Errorf("reply = %q, want workspace error for empty workspace list", reply)
	}
}

func TestHandleMessageCreateTask(t *testing.T) {
	api := defaultAPI()
	uc, _ := newFixture(api)

	reply := handle(t, uc, "create task in marketing Write copy | q3 push | 2024-06-01 | bob")
	if reply != "Created task \"Write copy\" in Marketing." {
		t.Errorf("reply = %q", reply)
	}

	if len(api.created) != 1 {
		t.Fatalf("created %d tasks, want 1", len(api.created))
	}
	req := api.created[0]
	if req.Workspace != "ws1" || len(req.Projects) != 1 || req.Projects[0] != "p1" {
		t.Errorf("request scoped wrong: %+v", req)
	}
	if req.Notes != "q3 push" || req.DueOn != "2024-06-01" || req.Assignee != "bob" {
		t.Errorf("optional fields not forwarded: %+v", req)
	}
}

func TestHandleMessageCreateTaskProjectMiss(t *testing.T) {
	uc, _ := newFixture(defaultAPI())
	reply := handle(t, uc, "create task in Ops Write copy")
	if reply != "Project not found: Ops" {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleMessageCreateTaskRemoteFailure(t *testing.T) {
	api := defaultAPI()
	api.createErr = errors.New("503")
	uc, _ := newFixture(api)

	reply := handle(t, uc, "create task in Marketing Write copy")
	if reply != "Failed to create task \"Write copy\"." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleMessageUpdateTask(t *testing.T) {
	api := defaultAPI()
	uc, _ := newFixture(api)

	reply := handle(t, uc, "update task 123 status=done priority=high")
	if reply != "Updated task 123." {
		t.Errorf("reply = %q", reply)
	}
	if api.updated["123"]["status"] != "done" || api.updated["123"]["priority"] != "high" {
		t.Errorf("fields not forwarded: %v", api.updated)
	}

	api.updateErr = errors.New("403")
	if reply := handle(t, uc, "update task 123 status=done"); reply != "Failed to update task 123." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleMessageDeleteTask(t *testing.T) {
	api := defaultAPI()
	uc, _ := newFixture(api)

	if reply := handle(t, uc, "delete task 456"); reply != "Deleted task 456." {
		t.Errorf("reply = %q", reply)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "456" {
		t.Errorf("deleted = %v", api.deleted)
	}

	api.deleteErr = errors.New("404")
	if reply := handle(t, uc, "delete task 456"); reply != "Failed to delete task 456." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleMessageListTasks(t *testing.T) {
	api := defaultAPI()
	api.tasks = []asana.Task{{GID: "t1", Name: "A", Completed: false}}
	uc, _ := newFixture(api)

	reply := handle(t, uc, "get project tasks in Launch")
	if !strings.Contains(reply, "Found 1") {
		t.Errorf("reply %q should contain the count header", reply)
	}
	if !strings.Contains(reply, "A (Pending)") {
		t.Errorf("reply %q should list the pending task", reply)
	}
}

func TestHandleMessageListTasksRendering(t *testing.T) {
	done := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	api := defaultAPI()
	api.tasks = []asana.Task{
		{GID: "t1", Name: "Ship it", Completed: false, DueOn: "2024-05-03", Assignee: &asana.UserRef{GID: "u9", Name: "Carol"}},
		{GID: "t2", Name: "Old", Completed: true, CompletedAt: &done},
	}
	uc, _ := newFixture(api)

	reply := handle(t, uc, "get project tasks in Launch")
	if !strings.Contains(reply, "Found 2 task(s) in Launch:") {
		t.Errorf("reply %q missing header", reply)
	}
	if !strings.Contains(reply, "- Ship it (Pending), due 2024-05-03, assigned to Carol") {
		t.Errorf("reply %q missing rendered pending line", reply)
	}
	if !strings.Contains(reply, "- Old (Completed)") {
		t.Errorf("reply %q missing completed line", reply)
	}
}

func TestHandleMessageListTasksStatusFilter(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	api := defaultAPI()
	api.tasks = []asana.Task{
		{GID: "t1", Name: "Late", Completed: false, DueOn: "2024-05-01"},
		{GID: "t2", Name: "Soon", Completed: false, DueOn: "2024-05-12"},
		{GID: "t3", Name: "Done", Completed: true},
	}
	uc, _ := newFixture(api)
	usecase.SetClock(uc, func() time.Time { return now })

	reply := handle(t, uc, "get project tasks in Launch in overdue")
	if !strings.Contains(reply, "Found 1") || !strings.Contains(reply, "Late (Pending)") {
		t.Errorf("overdue filter reply = %q", reply)
	}
	if strings.Contains(reply, "Soon") || strings.Contains(reply, "Done") {
		t.Errorf("overdue filter leaked other tasks: %q", reply)
	}

	reply = handle(t, uc, "get project tasks in Launch in due soon")
	if !strings.Contains(reply, "Found 1") || !strings.Contains(reply, "Soon (Pending)") {
		t.Errorf("due_soon filter reply = %q", reply)
	}
}

func TestHandleMessageListTasksFetchFailure(t *testing.T) {
	api := defaultAPI()
	api.tasksErr = errors.New("500")
	uc, _ := newFixture(api)

	if reply := handle(t, uc, "get project tasks in Launch"); reply != "Failed to fetch tasks for Launch." {
		t.Errorf("reply = %q", reply)
	}
}

func TestHandleMessageUnrecognized(t *testing.T) {
	uc, _ := newFixture(defaultAPI())
	if reply := handle(t, uc, "banana"); !strings.Contains(reply, "didn't understand") {
		t.Errorf("reply = %q", reply)
	}
}

func TestCompleteAuthorization(t *testing.T) {
	uc, auth := newFixture(defaultAPI())

	if err := uc.CompleteAuthorization(context.Background(), bot.AuthCallbackInput{Code: "c1", State: "u1"}); err != nil {
		t.Fatalf("CompleteAuthorization: %v", err)
	}
	if len(auth.exchanged) != 1 || auth.exchanged[0] != "u1" {
		t.Errorf("exchanged = %v", auth.exchanged)
	}

	auth.exchangeErr = errors.New("invalid_grant")
	if err := uc.CompleteAuthorization(context.Background(), bot.AuthCallbackInput{Code: "c1", State: "u1"}); err == nil {
		t.Error("expected error from failed exchange")
	}
}
