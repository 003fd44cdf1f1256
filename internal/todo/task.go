package todo

import (
	"encoding/json"
	"time"
)

// Priority is a task priority. Values are not validated; the shells offer
// the three constants below.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities returns the priorities offered by the shells, most urgent first.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow}
}

// Task represents a single entry in the list.
type Task struct {
	Title     string
	DueDate   time.Time
	Priority  Priority
	Tags      []string
	Recurring bool
	Progress  int
	Completed bool
}

// NewTask builds a pending task with no progress.
func NewTask(title string, due time.Time, priority Priority, tags []string, recurring bool) Task {
	return Task{
		Title:     title,
		DueDate:   due,
		Priority:  priority,
		Tags:      cloneTags(tags),
		Recurring: recurring,
	}
}

// Record is the plain mapping form of a task as stored on disk.
type Record struct {
	Title     string   `json:"title"`
	DueDate   string   `json:"due_date"`
	Priority  string   `json:"priority"`
	Tags      []string `json:"tags"`
	Recurring bool     `json:"recurring"`
	Progress  int      `json:"progress"`
	Completed bool     `json:"completed"`
}

// Record returns the mapping form of t with the due date as ISO-8601 text.
func (t Task) Record() Record {
	tags := cloneTags(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Record{
		Title:     t.Title,
		DueDate:   FormatTimestamp(t.DueDate),
		Priority:  string(t.Priority),
		Tags:      tags,
		Recurring: t.Recurring,
		Progress:  t.Progress,
		Completed: t.Completed,
	}
}

// MarshalJSON encodes the task in its mapping form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// Entry is the read-only view of a task returned by Store.List.
type Entry struct {
	Title     string    `json:"title" yaml:"title"`
	DueDate   time.Time `json:"due_date" yaml:"due_date"`
	Priority  Priority  `json:"priority" yaml:"priority"`
	Tags      []string  `json:"tags" yaml:"tags"`
	Progress  int       `json:"progress" yaml:"progress"`
	Completed bool      `json:"completed" yaml:"completed"`
}

func (t Task) entry() Entry {
	tags := cloneTags(t.Tags)
	if tags == nil {
		tags = []string{}
	}
	return Entry{
		Title:     t.Title,
		DueDate:   t.DueDate,
		Priority:  t.Priority,
		Tags:      tags,
		Progress:  t.Progress,
		Completed: t.Completed,
	}
}

func (t Task) clone() Task {
	t.Tags = cloneTags(t.Tags)
	return t
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
