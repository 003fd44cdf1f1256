package printer

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nibzard/todolist/internal/logging"
)

// TextPrinter prints numbered task lines for humans.
type TextPrinter struct {
	writer io.Writer
	now    func() time.Time
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w, now: time.Now}
}

// WithNow fixes the clock used for relative due dates.
func (t *TextPrinter) WithNow(now func() time.Time) *TextPrinter {
	t.now = now
	return t
}

// PrintList prints one numbered line per task. Pending tasks get a relative
// due time.
func (t *TextPrinter) PrintList(items []Item) error {
	if len(items) == 0 {
		return t.PrintMessage("No tasks.")
	}

	now := t.now()
	for _, it := range items {
		line := fmt.Sprintf("%d. %s", it.Number, FormatLine(it.Entry))
		if !it.Completed {
			line += fmt.Sprintf(" (due %s)", humanize.RelTime(it.DueDate, now, "ago", "from now"))
		}
		if _, err := fmt.Fprintln(t.writer, line); err != nil {
			return err
		}
	}
	return nil
}

// PrintHistory prints journal entries as a table, oldest first.
func (t *TextPrinter) PrintHistory(entries []logging.HistoryEntry) error {
	if len(entries) == 0 {
		return t.PrintMessage("No history.")
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "WHEN\tOP\t#\tDETAIL")
	now := t.now()
	for _, item := range historyItems(entries) {
		number := "-"
		if item.Number > 0 {
			number = fmt.Sprint(item.Number)
		}
		detail := item.Title
		if item.Key != "" {
			detail = "by " + item.Key
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", humanize.RelTime(item.Time, now, "ago", "from now"), item.Op, number, detail)
	}
	return nil
}

// PrintMessage prints a simple text message.
func (t *TextPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
