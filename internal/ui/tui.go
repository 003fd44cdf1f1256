// Package ui provides the interactive terminal shell.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/todo"
)

// Store is the task list the shell edits. *todo.Store satisfies it.
type Store interface {
	Path() string
	List() []todo.Entry
	Task(index int) (todo.Task, error)
	Add(title string, due time.Time, priority todo.Priority, tags []string, recurring bool) error
	Edit(index int, title string, due time.Time, priority todo.Priority, tags []string, recurring bool) error
	Delete(index int) error
	Complete(index int) error
	Sort(key todo.SortKey) error
	Reload() error
}

// RunTUI starts the interactive shell on the terminal.
func RunTUI(ctx context.Context, cfg *config.Config, store Store) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	program := tea.NewProgram(newTUIModel(cfg, store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type mode int

const (
	modeList mode = iota
	modeForm
	modeSort
	modeConfirmDelete
	modeHelp
)

type tuiModel struct {
	store           Store
	defaultPriority string
	presetTags      []string

	entries []todo.Entry
	cursor  int
	mode    mode
	input   textinput.Model
	form    *formState
	width   int

	status    string
	statusErr bool
}

func newTUIModel(cfg *config.Config, store Store) *tuiModel {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	m := &tuiModel{
		store:           store,
		defaultPriority: config.DefaultPriority,
		presetTags:      config.DefaultTags(),
		input:           ti,
		mode:            modeList,
		status:          "Press a to add, ? for help.",
	}
	if cfg != nil {
		if cfg.DefaultPriority != "" {
			m.defaultPriority = cfg.DefaultPriority
		}
		if len(cfg.Tags) > 0 {
			m.presetTags = cfg.Tags
		}
	}
	m.entries = store.List()
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSort:
			return m.updateSort(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case modeHelp:
			m.mode = modeList
			return m, nil
		default:
			return m.updateList(msg)
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.input.Width = msg.Width - 20
		}
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.entries))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.entries))
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = clampCursor(len(m.entries)-1, len(m.entries))
	case "a":
		return m.startAdd()
	case "e":
		if !m.hasSelection() {
			m.warn("Select Task: choose a task to edit.")
			return m, nil
		}
		return m.startEdit(m.cursor)
	case "d":
		if !m.hasSelection() {
			m.warn("Select Task: choose a task to delete.")
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.setStatus(fmt.Sprintf("Delete %q? (y/n)", m.entries[m.cursor].Title))
	case "c", " ", "space":
		if !m.hasSelection() {
			m.warn("Select Task: choose a task to mark as completed.")
			return m, nil
		}
		if err := m.store.Complete(m.cursor); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.setStatus("Task marked as completed.")
	case "s":
		m.mode = modeSort
		m.input.SetValue("")
		m.input.Placeholder = "title, due date, priority, event, urgency"
		m.input.Focus()
		m.setStatus("Sort by which field? Enter to apply, Esc to cancel.")
	case "r":
		if err := m.store.Reload(); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.setStatus(fmt.Sprintf("Reloaded %d tasks.", len(m.entries)))
	case "?", "h":
		m.mode = modeHelp
	}
	return m, nil
}

func (m *tuiModel) updateSort(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.leaveInput()
		m.setStatus("Sort cancelled.")
		return m, nil
	case "enter":
		key, err := todo.ParseSortKey(m.input.Value())
		if err != nil {
			m.fail(err)
			return m, nil
		}
		m.leaveInput()
		if err := m.store.Sort(key); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.cursor = 0
		m.setStatus(fmt.Sprintf("Sorted by %s.", key))
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *tuiModel) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeList
		if err := m.store.Delete(m.cursor); err != nil {
			m.fail(err)
			return m, nil
		}
		m.refresh()
		m.setStatus("Task deleted.")
	case "n", "N", "esc":
		m.mode = modeList
		m.setStatus("Delete cancelled.")
	}
	return m, nil
}

func (m *tuiModel) leaveInput() {
	m.mode = modeList
	m.form = nil
	m.input.Blur()
	m.input.SetValue("")
	m.input.Placeholder = ""
}

func (m *tuiModel) refresh() {
	m.entries = m.store.List()
	m.cursor = clampCursor(m.cursor, len(m.entries))
}

func (m *tuiModel) hasSelection() bool {
	return m.cursor >= 0 && m.cursor < len(m.entries)
}

func (m *tuiModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *tuiModel) warn(s string) {
	m.status = s
	m.statusErr = true
}

func (m *tuiModel) fail(err error) {
	m.warn("Error: " + err.Error())
}

func clampCursor(cur, n int) int {
	if n <= 0 || cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
