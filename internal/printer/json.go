package printer

import (
	"encoding/json"
	"io"

	"github.com/nibzard/todolist/internal/logging"
)

// JSONPrinter prints tasks in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

type messageOutput struct {
	Message string `json:"message" yaml:"message"`
}

// PrintList prints the tasks as a JSON array.
func (j *JSONPrinter) PrintList(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	return j.encode(items)
}

// PrintHistory prints journal entries as a JSON array.
func (j *JSONPrinter) PrintHistory(entries []logging.HistoryEntry) error {
	return j.encode(historyItems(entries))
}

// PrintMessage prints a simple message in JSON format.
func (j *JSONPrinter) PrintMessage(msg string) error {
	return j.encode(messageOutput{Message: msg})
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
