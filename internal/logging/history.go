package logging

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/nibzard/todolist/internal/todo"
)

// HistoryEntry is one line of the change journal.
type HistoryEntry struct {
	ID    string    `json:"id"`
	Time  time.Time `json:"time"`
	Op    todo.Op   `json:"op"`
	Index int       `json:"index"`
	Title string    `json:"title,omitempty"`
	Key   string    `json:"key,omitempty"`
}

// History appends changes to a JSONL journal. It implements todo.Recorder.
type History struct {
	Dir  string
	Path string

	mu   sync.Mutex
	file *os.File
	now  func() time.Time
}

// OpenHistory opens (creating if needed) the journal for todoPath under
// baseDir.
func OpenHistory(baseDir, todoPath string) (*History, error) {
	dir, err := HistoryDir(baseDir, todoPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	path := filepath.Join(dir, historyFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}

	return &History{
		Dir:  dir,
		Path: path,
		file: file,
		now:  time.Now,
	}, nil
}

// Record appends one entry for c.
func (h *History) Record(c todo.Change) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return fmt.Errorf("history is closed")
	}

	entry := HistoryEntry{
		ID:    ulid.Make().String(),
		Time:  h.now().UTC(),
		Op:    c.Op,
		Index: c.Index,
		Title: c.Task.Title,
		Key:   string(c.Key),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}
	data = append(data, '\n')
	if _, err := h.file.Write(data); err != nil {
		return fmt.Errorf("write history entry: %w", err)
	}
	return nil
}

// Close closes the journal file.
func (h *History) Close() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

// FindHistory returns the journal path for todoPath, or "" if none has been
// written yet.
func FindHistory(baseDir, todoPath string) (string, error) {
	path, err := HistoryPath(baseDir, todoPath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat history file: %w", err)
	}
	return path, nil
}

// ReadHistory decodes the last n entries of the journal at path. n <= 0
// returns every entry. Undecodable lines are skipped.
func ReadHistory(path string, n int) ([]HistoryEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history file: %w", err)
	}
	defer file.Close()

	var entries []HistoryEntry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry HistoryEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
