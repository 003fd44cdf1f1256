package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todolist/internal/todo"
	"github.com/nibzard/todolist/internal/utils"
)

const (
	fieldTitle = iota
	fieldDue
	fieldPriority
	fieldTags
	fieldRecurring
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Due Date (YYYY-MM-DD)",
	"Priority (High/Medium/Low)",
	"Tags (comma separated)",
	"Recurring (y/n)",
}

// formState holds the add/edit form. editIndex is -1 when adding.
type formState struct {
	editIndex int
	values    [fieldCount]string
	index     int
}

func (m *tuiModel) startAdd() (tea.Model, tea.Cmd) {
	m.form = &formState{editIndex: -1}
	m.form.values[fieldPriority] = m.defaultPriority
	m.form.values[fieldRecurring] = "n"
	m.enterForm()
	return m, nil
}

func (m *tuiModel) startEdit(index int) (tea.Model, tea.Cmd) {
	task, err := m.store.Task(index)
	if err != nil {
		m.fail(err)
		return m, nil
	}
	m.form = &formState{editIndex: index}
	m.form.values[fieldTitle] = task.Title
	m.form.values[fieldDue] = utils.FormatDate(task.DueDate)
	m.form.values[fieldPriority] = string(task.Priority)
	m.form.values[fieldTags] = utils.JoinTags(task.Tags)
	m.form.values[fieldRecurring] = utils.YesNo(task.Recurring)
	m.enterForm()
	return m, nil
}

func (m *tuiModel) enterForm() {
	m.mode = modeForm
	m.form.index = fieldTitle
	m.loadField()
	m.input.Focus()
	m.setStatus(m.formPrompt())
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		editing := m.form.editIndex >= 0
		m.leaveInput()
		if editing {
			m.setStatus("Edit cancelled.")
		} else {
			m.setStatus("Add cancelled.")
		}
		return m, nil
	case "tab", "down":
		m.moveField(1)
		return m, nil
	case "shift+tab", "up":
		m.moveField(-1)
		return m, nil
	case "enter":
		m.storeField()
		if m.form.index < fieldCount-1 {
			m.form.index++
			m.loadField()
			m.setStatus(m.formPrompt())
			return m, nil
		}
		return m.submitForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *tuiModel) moveField(delta int) {
	m.storeField()
	m.form.index = wrapIndex(m.form.index+delta, fieldCount)
	m.loadField()
	m.setStatus(m.formPrompt())
}

func (m *tuiModel) storeField() {
	m.form.values[m.form.index] = m.input.Value()
}

func (m *tuiModel) loadField() {
	m.input.SetValue(m.form.values[m.form.index])
	m.input.CursorEnd()
	m.input.Placeholder = ""
	if m.form.index == fieldTags {
		m.input.Placeholder = utils.JoinTags(m.presetTags)
	}
}

// focusField jumps to the field that failed validation.
func (m *tuiModel) focusField(field int, msg string) (tea.Model, tea.Cmd) {
	m.form.index = field
	m.loadField()
	m.warn(msg)
	return m, nil
}

func (m *tuiModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form

	title := strings.TrimSpace(f.values[fieldTitle])
	if title == "" {
		return m.focusField(fieldTitle, "Title cannot be empty.")
	}
	due, err := utils.ParseDate(f.values[fieldDue])
	if err != nil {
		return m.focusField(fieldDue, fmt.Sprintf("Invalid Date: %v.", err))
	}
	priority, ok := utils.NormalizePriority(f.values[fieldPriority])
	if !ok {
		return m.focusField(fieldPriority, fmt.Sprintf("Invalid priority %q: choose High, Medium or Low.", priority))
	}
	tags := utils.SplitAndTrim(f.values[fieldTags], ",")
	recurring := utils.ParseYesNo(f.values[fieldRecurring])

	if f.editIndex < 0 {
		if err := m.store.Add(title, due, todo.Priority(priority), tags, recurring); err != nil {
			m.fail(err)
			return m, nil
		}
		m.leaveInput()
		m.refresh()
		m.cursor = clampCursor(len(m.entries)-1, len(m.entries))
		m.setStatus("Task added.")
		return m, nil
	}

	index := f.editIndex
	if err := m.store.Edit(index, title, due, todo.Priority(priority), tags, recurring); err != nil {
		m.fail(err)
		return m, nil
	}
	m.leaveInput()
	m.refresh()
	m.cursor = clampCursor(index, len(m.entries))
	m.setStatus("Task updated.")
	return m, nil
}

func (m *tuiModel) formPrompt() string {
	verb := "New task"
	if m.form.editIndex >= 0 {
		verb = fmt.Sprintf("Editing task %d", m.form.editIndex+1)
	}
	return fmt.Sprintf("%s: %s (field %d of %d). Enter to advance, Tab to move, Esc to cancel.",
		verb, fieldLabels[m.form.index], m.form.index+1, fieldCount)
}
