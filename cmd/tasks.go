package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/todolist/internal/printer"
	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/utils"
)

// addCommand appends a task.
func (a *app) addCommand(args []string) error {
	fs := a.newFlagSet("add")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	priority := fs.String("priority", a.cfg.DefaultPriority, "Priority (High|Medium|Low)")
	tags := fs.String("tags", "", "Comma-separated tags")
	recurring := fs.Bool("recurring", false, "Mark the task as recurring")

	words, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return fmt.Errorf("add: a title is required")
	}
	if strings.TrimSpace(*due) == "" {
		return fmt.Errorf("add: -due is required (YYYY-MM-DD)")
	}
	dueDate, err := parseDue(*due)
	if err != nil {
		return err
	}
	p, err := parsePriority(*priority)
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Add(title, dueDate, p, utils.SplitAndTrim(*tags, ","), *recurring); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added task %d: %s\n", store.Len(), title)
	return nil
}

// editCommand overwrites the fields given as flags on one task.
func (a *app) editCommand(args []string) error {
	fs := a.newFlagSet("edit")
	title := fs.String("title", "", "New title")
	due := fs.String("due", "", "New due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "New priority (High|Medium|Low)")
	tags := fs.String("tags", "", "New comma-separated tags (empty clears)")
	recurring := fs.Bool("recurring", false, "Recurring flag")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	n, err := parseTaskNumber(positional)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return fmt.Errorf("edit: nothing to change, use -title, -due, -priority, -tags or -recurring")
	}

	store, closeStore, err := a.openStore(a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := store.Task(n - 1)
	if err != nil {
		return taskNumberError(n, store.Len(), err)
	}
	if set["title"] {
		task.Title = strings.TrimSpace(*title)
		if task.Title == "" {
			return fmt.Errorf("edit: title cannot be empty")
		}
	}
	if set["due"] {
		if task.DueDate, err = parseDue(*due); err != nil {
			return err
		}
	}
	if set["priority"] {
		if task.Priority, err = parsePriority(*priority); err != nil {
			return err
		}
	}
	if set["tags"] {
		task.Tags = utils.SplitAndTrim(*tags, ",")
	}
	if set["recurring"] {
		task.Recurring = *recurring
	}

	if err := store.Edit(n-1, task.Title, task.DueDate, task.Priority, task.Tags, task.Recurring); err != nil {
		return taskNumberError(n, store.Len(), err)
	}
	fmt.Fprintf(a.stdout, "Updated task %d: %s\n", n, task.Title)
	return nil
}

// removeCommand deletes one task.
func (a *app) removeCommand(args []string) error {
	return a.indexCommand("rm", args, func(store *todo.Store, index int) (string, error) {
		task, err := store.Task(index)
		if err != nil {
			return "", err
		}
		if err := store.Delete(index); err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted task %d: %s", index+1, task.Title), nil
	})
}

// doneCommand marks one task as completed.
func (a *app) doneCommand(args []string) error {
	return a.indexCommand("done", args, func(store *todo.Store, index int) (string, error) {
		if err := store.Complete(index); err != nil {
			return "", err
		}
		task, err := store.Task(index)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Completed task %d: %s", index+1, task.Title), nil
	})
}

func (a *app) indexCommand(name string, args []string, apply func(*todo.Store, int) (string, error)) error {
	fs := a.newFlagSet(name)
	if err := fs.Parse(args); err != nil {
		return err
	}
	n, err := parseTaskNumber(fs.Args())
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	msg, err := apply(store, n-1)
	if err != nil {
		return taskNumberError(n, store.Len(), err)
	}
	fmt.Fprintln(a.stdout, msg)
	return nil
}

// sortCommand reorders the list and saves it.
func (a *app) sortCommand(args []string) error {
	fs := a.newFlagSet("sort")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("sort: a key is required (title, due date, priority, event, urgency)")
	}
	key, err := todo.ParseSortKey(strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := store.Sort(key); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Sorted %d tasks by %s.\n", store.Len(), key)
	return nil
}

// lsCommand prints the list.
func (a *app) lsCommand(args []string) error {
	fs := a.newFlagSet("ls")
	format := fs.String("format", "text", "Output format (text|json|yaml)")
	pending := fs.Bool("pending", false, "Hide completed tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	p, err := printer.New(*format, a.stdout)
	if err != nil {
		return err
	}

	// ls never writes, so the history journal is not opened.
	store, err := todo.Open(a.cfg.TodoFile, todo.WithLogger(a.logger))
	if err != nil {
		return err
	}

	items := printer.Items(store.List())
	if *pending {
		items = printer.Pending(items)
	}
	return p.PrintList(items)
}

// parseInterspersed parses flags that may appear after positional
// arguments and returns the positional ones in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func parseTaskNumber(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one task number, got %d arguments", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task number %q: numbers start at 1", args[0])
	}
	return n, nil
}

func taskNumberError(n, count int, err error) error {
	if errors.Is(err, todo.ErrNotFound) {
		return fmt.Errorf("task %d does not exist (the list has %d): %w", n, count, todo.ErrNotFound)
	}
	return err
}

func parseDue(s string) (time.Time, error) {
	due, err := utils.ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("Invalid Date: %w.", err)
	}
	return due, nil
}

func parsePriority(s string) (todo.Priority, error) {
	p, ok := utils.NormalizePriority(s)
	if !ok {
		return "", fmt.Errorf("invalid priority %q, must be one of: High, Medium, Low", s)
	}
	return todo.Priority(p), nil
}
