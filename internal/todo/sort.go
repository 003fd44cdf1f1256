package todo

import (
	"fmt"
	"strings"
)

// SortKey selects the single field a list is ordered by.
type SortKey string

const (
	SortByTitle    SortKey = "title"
	SortByDueDate  SortKey = "due date"
	SortByPriority SortKey = "priority"
	// SortByEvent orders by title; lists have no separate event field.
	SortByEvent SortKey = "event"
	// SortByUrgency ranks High, Medium, Low, then any other priority.
	SortByUrgency SortKey = "urgency"
)

// SortKeys returns every accepted key in display order.
func SortKeys() []SortKey {
	return []SortKey{SortByTitle, SortByDueDate, SortByPriority, SortByEvent, SortByUrgency}
}

// ParseSortKey maps user input to a SortKey.
func ParseSortKey(input string) (SortKey, error) {
	s := strings.ToLower(strings.Join(strings.Fields(input), " "))
	switch s {
	case "title":
		return SortByTitle, nil
	case "due date", "due_date", "due-date", "duedate", "due":
		return SortByDueDate, nil
	case "priority":
		return SortByPriority, nil
	case "event":
		return SortByEvent, nil
	case "urgency":
		return SortByUrgency, nil
	default:
		return "", fmt.Errorf("%w %q, must be one of: title, due date, priority, event, urgency", ErrInvalidSortKey, input)
	}
}

func (k SortKey) less(tasks []Task) (func(i, j int) bool, error) {
	switch k {
	case SortByTitle, SortByEvent:
		return func(i, j int) bool { return tasks[i].Title < tasks[j].Title }, nil
	case SortByDueDate:
		return func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) }, nil
	case SortByPriority:
		return func(i, j int) bool { return tasks[i].Priority < tasks[j].Priority }, nil
	case SortByUrgency:
		return func(i, j int) bool { return urgencyRank(tasks[i].Priority) < urgencyRank(tasks[j].Priority) }, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrInvalidSortKey, string(k))
	}
}

func urgencyRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}
