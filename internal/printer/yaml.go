package printer

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/nibzard/todolist/internal/logging"
)

// YAMLPrinter prints tasks in YAML format.
type YAMLPrinter struct {
	writer io.Writer
}

// NewYAMLPrinter creates a new YAML printer.
func NewYAMLPrinter(w io.Writer) *YAMLPrinter {
	return &YAMLPrinter{writer: w}
}

// PrintList prints the tasks as a YAML sequence.
func (y *YAMLPrinter) PrintList(items []Item) error {
	return y.encode(items)
}

// PrintHistory prints journal entries as a YAML sequence.
func (y *YAMLPrinter) PrintHistory(entries []logging.HistoryEntry) error {
	return y.encode(historyItems(entries))
}

// PrintMessage prints a simple message in YAML format.
func (y *YAMLPrinter) PrintMessage(msg string) error {
	return y.encode(messageOutput{Message: msg})
}

func (y *YAMLPrinter) encode(v any) error {
	enc := yaml.NewEncoder(y.writer)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
