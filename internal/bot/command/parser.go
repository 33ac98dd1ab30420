package command

import (
	"strings"

	"asana-chatbot/internal/bot/status"
)

// Grammar keywords. These literals are part of the chat-facing contract;
// downstream response text depends on the exact split positions, so the
// parser deliberately splits on fixed delimiters instead of being lenient
// about whitespace.
const (
	keywordConnect = "connect asana"
	prefixCreate   = "create task"
	prefixUpdate   = "update task"
	prefixDelete   = "delete task"
	prefixList     = "get project tasks"

	delimIn    = " in "
	delimField = " | "
)

// Parse turns a raw chat message into a Command. It never fails: anything
// that matches no grammar rule comes back as KindUnrecognized.
func Parse(raw string) Command {
	switch {
	case strings.EqualFold(raw, keywordConnect):
		return Command{Kind: KindConnect}
	case strings.HasPrefix(raw, prefixCreate):
		return parseCreate(raw)
	case strings.HasPrefix(raw, prefixUpdate):
		return parseUpdate(raw)
	case strings.HasPrefix(raw, prefixDelete):
		return parseDelete(raw)
	case strings.HasPrefix(raw, prefixList):
		return parseList(raw)
	}
	return Command{Kind: KindUnrecognized}
}

// parseCreate handles "create task in <project> <name> | <notes> | <due_on> | <assignee>".
// The message is split once on " in "; the first word after the delimiter is
// the project name and the rest is a " | "-separated field list with trailing
// fields optional.
func parseCreate(raw string) Command {
	parts := strings.SplitN(raw, delimIn, 2)
	if len(parts) < 2 {
		return Command{Kind: KindUnrecognized}
	}

	words := strings.Split(parts[1], " ")
	create := &CreateTask{ProjectName: words[0]}

	fields := strings.Split(strings.Join(words[1:], " "), delimField)
	if len(fields) > 0 {
		create.Name = fields[0]
	}
	if len(fields) > 1 {
		create.Notes = fields[1]
	}
	if len(fields) > 2 {
		create.DueOn = fields[2]
	}
	if len(fields) > 3 {
		create.Assignee = fields[3]
	}

	return Command{Kind: KindCreateTask, Create: create}
}

// parseUpdate handles "update task <id> key=value ...". The third
// space-separated token is the task id; later tokens form a field mapping
// where the last occurrence of a duplicate key wins. Tokens without "=" are
// dropped.
func parseUpdate(raw string) Command {
	tokens := strings.Split(raw, " ")
	if len(tokens) < 3 {
		return Command{Kind: KindUnrecognized}
	}

	fields := make(map[string]string)
	for _, token := range tokens[3:] {
		kv := strings.SplitN(token, "=", 2)
		if len(kv) == 2 {
			fields[kv[0]] = kv[1]
		}
	}

	return Command{Kind: KindUpdateTask, Update: &UpdateTask{
		TaskID: tokens[2],
		Fields: fields,
	}}
}

// parseDelete handles "delete task <id>".
func parseDelete(raw string) Command {
	tokens := strings.Split(raw, " ")
	if len(tokens) < 3 {
		return Command{Kind: KindUnrecognized}
	}
	return Command{Kind: KindDeleteTask, Delete: &DeleteTask{TaskID: tokens[2]}}
}

// parseList handles "get project tasks in <project>[ in <status>]". The status
// segment is free text mapped case-insensitively to a filter; unknown values
// degrade to "any".
func parseList(raw string) Command {
	segments := strings.SplitN(raw, delimIn, 3)
	if len(segments) < 2 {
		return Command{Kind: KindUnrecognized}
	}

	list := &ListTasks{
		ProjectName: segments[1],
		Status:      status.FilterAny,
	}
	if len(segments) > 2 {
		list.Status = status.ParseFilter(segments[2])
	}

	return Command{Kind: KindListTasks, List: list}
}
