package status

import "strings"

// Filter is a named predicate category used to narrow a task listing.
type Filter string

const (
	FilterPending           Filter = "pending"
	FilterCompleted         Filter = "completed"
	FilterDueSoon           Filter = "due_soon"
	FilterOverdue           Filter = "overdue"
	FilterNoDueDate         Filter = "no_due_date"
	FilterRecentlyCompleted Filter = "recently_completed"
	FilterAny               Filter = "any"
)

// ParseFilter maps free text to a Filter, case-insensitively. Inner spaces are
// treated as underscores so "due soon" and "due_soon" both resolve.
// Unknown strings degrade to FilterAny.
func ParseFilter(s string) Filter {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")

	switch Filter(normalized) {
	case FilterPending, FilterCompleted, FilterDueSoon, FilterOverdue,
		FilterNoDueDate, FilterRecentlyCompleted, FilterAny:
		return Filter(normalized)
	}
	return FilterAny
}
