package status

import (
	"time"

	"asana-chatbot/internal/model"
)

const (
	// dueSoonWindowDays is how far ahead a due date counts as "due soon".
	dueSoonWindowDays = 3

	// recentCompletionWindow is how far back a completion counts as "recent".
	recentCompletionWindow = 7 * 24 * time.Hour

	dueOnLayout = "2006-01-02"
)

// Matches reports whether the task satisfies the filter at the given instant.
// Filters are independent predicates, not a partition: a task may match several.
// Date filters compare at calendar-date granularity in now's location; an
// unparseable due_on counts as absent.
func Matches(t model.Task, f Filter, now time.Time) bool {
	switch f {
	case FilterPending:
		return !t.Completed

	case FilterCompleted:
		return t.Completed

	case FilterDueSoon:
		due, ok := dueDate(t, now.Location())
		if !ok || t.Completed {
			return false
		}
		today := startOfDay(now)
		// Inclusive on both ends: due today through due in 3 days.
		return !due.Before(today) && !due.After(today.AddDate(0, 0, dueSoonWindowDays))

	case FilterOverdue:
		due, ok := dueDate(t, now.Location())
		if !ok || t.Completed {
			return false
		}
		return due.Before(startOfDay(now))

	case FilterNoDueDate:
		_, ok := dueDate(t, now.Location())
		return !ok && !t.Completed

	case FilterRecentlyCompleted:
		// Exclusive lower bound: a completion exactly 7 days ago does not count.
		return t.CompletedAt != nil && t.CompletedAt.After(now.Add(-recentCompletionWindow))
	}

	// FilterAny and anything unrecognized match every task.
	return true
}

func dueDate(t model.Task, loc *time.Location) (time.Time, bool) {
	if t.DueOn == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(dueOnLayout, t.DueOn, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
