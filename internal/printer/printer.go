// Package printer renders task lists and the change history for the command
// line.
package printer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nibzard/todolist/internal/logging"
	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/utils"
)

// Printer knows how to print tasks in different formats.
type Printer interface {
	PrintList(items []Item) error
	PrintHistory(entries []logging.HistoryEntry) error
	PrintMessage(msg string) error
}

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// New returns the printer for format.
func New(format string, w io.Writer) (Printer, error) {
	switch Format(strings.ToLower(strings.TrimSpace(format))) {
	case FormatText, "":
		return NewTextPrinter(w), nil
	case FormatJSON:
		return NewJSONPrinter(w), nil
	case FormatYAML, "yml":
		return NewYAMLPrinter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q, must be one of: text, json, yaml", format)
	}
}

// FormatLine renders one task the way both shells list it:
// "[✓] title - Due: YYYY-MM-DD - Priority: p - Tags: a, b - Progress: n%".
func FormatLine(e todo.Entry) string {
	status := "[ ]"
	if e.Completed {
		status = "[✓]"
	}
	return fmt.Sprintf("%s %s - Due: %s - Priority: %s - Tags: %s - Progress: %d%%",
		status, e.Title, utils.FormatDate(e.DueDate), e.Priority, utils.JoinTags(e.Tags), e.Progress)
}

// Item is a task together with its 1-based number on the command line.
type Item struct {
	Number     int `json:"number" yaml:"number"`
	todo.Entry `yaml:",inline"`
}

// Items numbers entries in list order.
func Items(entries []todo.Entry) []Item {
	items := make([]Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Number: i + 1, Entry: e}
	}
	return items
}

// Pending drops completed items and keeps the original numbers.
func Pending(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Completed {
			out = append(out, it)
		}
	}
	return out
}

// historyItem is the printable form of a journal entry.
type historyItem struct {
	ID     string    `json:"id" yaml:"id"`
	Time   time.Time `json:"time" yaml:"time"`
	Op     string    `json:"op" yaml:"op"`
	Number int       `json:"number,omitempty" yaml:"number,omitempty"`
	Title  string    `json:"title,omitempty" yaml:"title,omitempty"`
	Key    string    `json:"key,omitempty" yaml:"key,omitempty"`
}

func historyItems(entries []logging.HistoryEntry) []historyItem {
	items := make([]historyItem, len(entries))
	for i, e := range entries {
		items[i] = historyItem{
			ID:    e.ID,
			Time:  e.Time,
			Op:    string(e.Op),
			Title: e.Title,
			Key:   e.Key,
		}
		if e.Index >= 0 {
			items[i].Number = e.Index + 1
		}
	}
	return items
}
