package usecase

import (
	"context"
	"fmt"
	"strings"

	"asana-chatbot/internal/bot"
	"asana-chatbot/internal/bot/command"
	"asana-chatbot/internal/bot/status"
	"asana-chatbot/internal/model"
	"asana-chatbot/pkg/asana"
)

// HandleMessage processes one chat message end to end. Every failure path is
// rendered as reply text; the returned error is always nil so the chat surface
// never sees an unhandled failure.
func (uc implUseCase) HandleMessage(ctx context.Context, sc model.Scope, input bot.MessageInput) (bot.MessageOutput, error) {
	token, err := uc.auth.Token(ctx, sc.UserID)
	if err != nil {
		uc.l.Infof(ctx, "bot.usecase.HandleMessage: no token for user=%s: %v", sc.UserID, err)
		reply := fmt.Sprintf(
			"Please connect your Asana account first. Send \"connect asana\" or open %s to authorize.",
			uc.auth.AuthorizationURL(sc.UserID),
		)
		return bot.MessageOutput{Reply: reply}, nil
	}

	client := uc.newClient(token)

	workspace, err := uc.resolveWorkspace(ctx, client)
	if err != nil {
		uc.l.Errorf(ctx, "bot.usecase.HandleMessage: workspace resolution failed for user=%s: %v", sc.UserID, err)
		return bot.MessageOutput{Reply: "Could not resolve your Asana workspace. Please try again later."}, nil
	}

	cmd := command.Parse(input.Text)

	switch cmd.Kind {
	case command.KindConnect:
		reply := fmt.Sprintf("Open this link to authorize access to Asana: %s", uc.auth.AuthorizationURL(sc.UserID))
		return bot.MessageOutput{Reply: reply}, nil

	case command.KindCreateTask:
		return bot.MessageOutput{Reply: uc.createTask(ctx, client, workspace, *cmd.Create)}, nil

	case command.KindUpdateTask:
		return bot.MessageOutput{Reply: uc.updateTask(ctx, client, *cmd.Update)}, nil

	case command.KindDeleteTask:
		return bot.MessageOutput{Reply: uc.deleteTask(ctx, client, *cmd.Delete)}, nil

	case command.KindListTasks:
		return bot.MessageOutput{Reply: uc.listTasks(ctx, client, workspace, *cmd.List)}, nil

	default:
		return bot.MessageOutput{Reply: replyUnrecognized}, nil
	}
}

const replyUnrecognized = "Sorry, I didn't understand that. Try \"create task in <project> <name>\", " +
	"\"update task <id> field=value\", \"delete task <id>\", \"get project tasks in <project>\", or \"connect asana\"."

// resolveWorkspace takes the first workspace visible to the token. Users with
// several workspaces always get the first one the API returns.
func (uc implUseCase) resolveWorkspace(ctx context.Context, client asana.API) (model.Workspace, error) {
	workspaces, err := client.Workspaces(ctx)
	if err != nil {
		return model.Workspace{}, fmt.Errorf("%w: %v", bot.ErrWorkspaceUnresolved, err)
	}
	if len(workspaces) == 0 {
		return model.Workspace{}, bot.ErrWorkspaceUnresolved
	}
	return model.Workspace{GID: workspaces[0].GID, Name: workspaces[0].Name}, nil
}

// findProject resolves a project by case-insensitive name, first match wins.
// Duplicate names depend on the API's listing order.
func (uc implUseCase) findProject(ctx context.Context, client asana.API, workspaceGID, name string) (*model.Project, error) {
	projects, err := client.Projects(ctx, workspaceGID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing projects: %v", bot.ErrRemoteOperation, err)
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, name) {
			return &model.Project{GID: p.GID, Name: p.Name}, nil
		}
	}
	return nil, bot.ErrProjectNotFound
}

func (uc implUseCase) createTask(ctx context.Context, client asana.API, workspace model.Workspace, payload command.CreateTask) string {
	project, err := uc.findProject(ctx, client, workspace.GID, payload.ProjectName)
	if err != nil {
		uc.l.Warnf(ctx, "bot.usecase.createTask: project lookup failed: %v", err)
		return fmt.Sprintf("Project not found: %s", payload.ProjectName)
	}

	req := asana.CreateTaskRequest{
		Name:      payload.Name,
		Notes:     payload.Notes,
		DueOn:     payload.DueOn,
		Assignee:  payload.Assignee,
		Workspace: workspace.GID,
		Projects:  []string{project.GID},
	}
	if _, err := client.CreateTask(ctx, req); err != nil {
		uc.l.Errorf(ctx, "bot.usecase.createTask: create failed: %v", err)
		return fmt.Sprintf("Failed to create task \"%s\".", payload.Name)
	}
	return fmt.Sprintf("Created task \"%s\" in %s.", payload.Name, project.Name)
}

func (uc implUseCase) updateTask(ctx context.Context, client asana.API, payload command.UpdateTask) string {
	if _, err := client.UpdateTask(ctx, payload.TaskID, payload.Fields); err != nil {
		uc.l.Errorf(ctx, "bot.usecase.updateTask: update failed for task=%s: %v", payload.TaskID, err)
		return fmt.Sprintf("Failed to update task %s.", payload.TaskID)
	}
	return fmt.Sprintf("Updated task %s.", payload.TaskID)
}

func (uc implUseCase) deleteTask(ctx context.Context, client asana.API, payload command.DeleteTask) string {
	if err := client.DeleteTask(ctx, payload.TaskID); err != nil {
		uc.l.Errorf(ctx, "bot.usecase.deleteTask: delete failed for task=%s: %v", payload.TaskID, err)
		return fmt.Sprintf("Failed to delete task %s.", payload.TaskID)
	}
	return fmt.Sprintf("Deleted task %s.", payload.TaskID)
}

func (uc implUseCase) listTasks(ctx context.Context, client asana.API, workspace model.Workspace, payload command.ListTasks) string {
	project, err := uc.findProject(ctx, client, workspace.GID, payload.ProjectName)
	if err != nil {
		uc.l.Warnf(ctx, "bot.usecase.listTasks: project lookup failed: %v", err)
		return fmt.Sprintf("Project not found: %s", payload.ProjectName)
	}

	tasks, err := client.ProjectTasks(ctx, project.GID)
	if err != nil {
		uc.l.Errorf(ctx, "bot.usecase.listTasks: fetching tasks failed for project=%s: %v", project.GID, err)
		return fmt.Sprintf("Failed to fetch tasks for %s.", project.Name)
	}

	now := uc.now()
	var matched []model.Task
	for _, t := range tasks {
		mt := taskToModel(t)
		if status.Matches(mt, payload.Status, now) {
			matched = append(matched, mt)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d task(s) in %s:", len(matched), project.Name)
	for _, t := range matched {
		b.WriteString("\n")
		b.WriteString(renderTaskLine(t))
	}
	return b.String()
}

// renderTaskLine formats one task as "- <name> (Pending|Completed)" with
// optional due date and assignee suffixes.
func renderTaskLine(t model.Task) string {
	label := "Pending"
	if t.Completed {
		label = "Completed"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "- %s (%s)", t.Name, label)
	if t.DueOn != "" {
		fmt.Fprintf(&b, ", due %s", t.DueOn)
	}
	if t.Assignee != nil && t.Assignee.Name != "" {
		fmt.Fprintf(&b, ", assigned to %s", t.Assignee.Name)
	}
	return b.String()
}

// taskToModel maps the wire representation into the domain model.
func taskToModel(t asana.Task) model.Task {
	mt := model.Task{
		GID:         t.GID,
		Name:        t.Name,
		Notes:       t.Notes,
		Completed:   t.Completed,
		DueOn:       t.DueOn,
		CreatedAt:   t.CreatedAt,
		ModifiedAt:  t.ModifiedAt,
		CompletedAt: t.CompletedAt,
	}
	if t.Assignee != nil {
		mt.Assignee = &model.Assignee{GID: t.Assignee.GID, Name: t.Assignee.Name}
	}
	return mt
}
