package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when an index does not address a task.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidSortKey is returned for an unknown sort key.
	ErrInvalidSortKey = errors.New("invalid sort key")
)

// ParseError reports a tasks file that cannot be turned into a list.
type ParseError struct {
	Path string // location inside the file, e.g. "[2].due_date"
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("parse tasks file: %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("parse tasks file: %s", e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func indexError(index, n int) error {
	return fmt.Errorf("%w: index %d out of range (have %d)", ErrNotFound, index, n)
}
