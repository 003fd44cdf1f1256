package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/moby/sys/atomicwriter"
)

// Op names a persisted mutation.
type Op string

const (
	OpAdd      Op = "add"
	OpEdit     Op = "edit"
	OpDelete   Op = "delete"
	OpComplete Op = "complete"
	OpSort     Op = "sort"
)

// Change describes a mutation that reached the file.
type Change struct {
	Op    Op
	Index int // -1 for OpSort
	Task  Task
	Key   SortKey // set for OpSort
}

// Recorder receives every persisted change.
type Recorder interface {
	Record(Change) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRecorder sets a recorder notified after each persisted mutation.
func WithRecorder(r Recorder) Option {
	return func(s *Store) {
		s.recorder = r
	}
}

// Store is an ordered task list backed by a JSON file. It is not safe for
// concurrent use.
type Store struct {
	path     string
	tasks    []Task
	logger   *log.Logger
	recorder Recorder
}

// Open creates a store for path and loads it. A missing file is an empty
// list.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("tasks file path is empty")
	}
	s := &Store{
		path:   path,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Reload replaces the in-memory list with the file contents. On error the
// current list is kept.
func (s *Store) Reload() error {
	tasks, err := readTasks(s.path)
	if err != nil {
		return err
	}
	s.tasks = tasks
	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return nil
}

// Save writes the full list to the file.
func (s *Store) Save() error {
	return writeTasks(s.path, s.tasks)
}

// List returns a read-only view of every task in list order.
func (s *Store) List() []Entry {
	entries := make([]Entry, 0, len(s.tasks))
	for _, t := range s.tasks {
		entries = append(entries, t.entry())
	}
	return entries
}

// Task returns a copy of the task at index.
func (s *Store) Task(index int) (Task, error) {
	if err := s.checkIndex(index); err != nil {
		return Task{}, err
	}
	return s.tasks[index].clone(), nil
}

// Add appends a new pending task and saves.
func (s *Store) Add(title string, due time.Time, priority Priority, tags []string, recurring bool) error {
	task := NewTask(title, due, priority, tags, recurring)
	next := append(s.snapshot(), task)
	return s.commit(next, Change{Op: OpAdd, Index: len(next) - 1, Task: task})
}

// Edit overwrites title, due date, priority, tags and recurring of the task
// at index. Progress and completion are kept.
func (s *Store) Edit(index int, title string, due time.Time, priority Priority, tags []string, recurring bool) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	next := s.snapshot()
	t := &next[index]
	t.Title = title
	t.DueDate = due
	t.Priority = priority
	t.Tags = cloneTags(tags)
	t.Recurring = recurring
	return s.commit(next, Change{Op: OpEdit, Index: index, Task: *t})
}

// Delete removes the task at index and saves.
func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	next := s.snapshot()
	removed := next[index]
	next = append(next[:index], next[index+1:]...)
	return s.commit(next, Change{Op: OpDelete, Index: index, Task: removed})
}

// Complete marks the task at index as completed and saves.
func (s *Store) Complete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	next := s.snapshot()
	next[index].Completed = true
	return s.commit(next, Change{Op: OpComplete, Index: index, Task: next[index]})
}

// Sort stably reorders the list by key and saves.
func (s *Store) Sort(key SortKey) error {
	next := s.snapshot()
	less, err := key.less(next)
	if err != nil {
		return err
	}
	sort.SliceStable(next, less)
	return s.commit(next, Change{Op: OpSort, Index: -1, Key: key})
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return indexError(index, len(s.tasks))
	}
	return nil
}

func (s *Store) snapshot() []Task {
	out := make([]Task, len(s.tasks), len(s.tasks)+1)
	for i, t := range s.tasks {
		out[i] = t.clone()
	}
	return out
}

// commit persists next and only then makes it the current list.
func (s *Store) commit(next []Task, change Change) error {
	if err := writeTasks(s.path, next); err != nil {
		return err
	}
	s.tasks = next
	s.logger.Debug("saved tasks", "op", change.Op, "index", change.Index, "count", len(next))

	if s.recorder != nil {
		if err := s.recorder.Record(change); err != nil {
			s.logger.Warn("record change", "op", change.Op, "err", err)
		}
	}
	return nil
}

func readTasks(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tasks file: %w", err)
	}
	return decodeTasks(data)
}

func decodeTasks(data []byte) ([]Task, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &ParseError{Err: err}
	}

	tasks := make([]Task, 0, len(records))
	for i, r := range records {
		due, err := ParseTimestamp(r.DueDate)
		if err != nil {
			return nil, &ParseError{Path: fmt.Sprintf("[%d].due_date", i), Err: err}
		}
		tasks = append(tasks, Task{
			Title:     r.Title,
			DueDate:   due,
			Priority:  Priority(r.Priority),
			Tags:      r.Tags,
			Recurring: r.Recurring,
			Progress:  r.Progress,
			Completed: r.Completed,
		})
	}
	return tasks, nil
}

func writeTasks(path string, tasks []Task) error {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, t.Record())
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create tasks dir: %w", err)
		}
	}
	if err := atomicwriter.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write tasks file: %w", err)
	}
	return nil
}
