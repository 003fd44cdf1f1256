package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/todolist/internal/printer"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pathStyle      = lipgloss.NewStyle().Faint(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	completedStyle = lipgloss.NewStyle().Faint(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	formBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func (m *tuiModel) View() string {
	var b strings.Builder
	m.writeHeader(&b)

	if m.mode == modeHelp {
		writeHelp(&b)
		return b.String()
	}

	m.writeTasks(&b)

	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	case modeSort:
		b.WriteString("Sort by: " + m.input.View() + "\n\n")
	}

	m.writeStatus(&b)
	return b.String()
}

func (m *tuiModel) writeHeader(b *strings.Builder) {
	done := 0
	for _, e := range m.entries {
		if e.Completed {
			done++
		}
	}
	b.WriteString(titleStyle.Render("To-Do List"))
	b.WriteString(fmt.Sprintf("  %d tasks, %d completed\n", len(m.entries), done))
	b.WriteString(pathStyle.Render(m.store.Path()))
	b.WriteString("\n\n")
}

func (m *tuiModel) writeTasks(b *strings.Builder) {
	if len(m.entries) == 0 {
		b.WriteString("  No tasks yet. Press a to add one.\n\n")
		return
	}
	for i, e := range m.entries {
		line := fmt.Sprintf("%d. %s", i+1, printer.FormatLine(e))
		switch {
		case i == m.cursor && m.mode != modeForm:
			b.WriteString(selectedStyle.Render("> " + line))
		case e.Completed:
			b.WriteString(completedStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) renderForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	if m.form.editIndex >= 0 {
		b.WriteString(fmt.Sprintf("Edit Task %d\n", m.form.editIndex+1))
	} else {
		b.WriteString("Add Task\n")
	}
	for i, label := range fieldLabels {
		prefix := " "
		value := m.form.values[i]
		if i == m.form.index {
			prefix = ">"
			value = m.input.View()
		} else if strings.TrimSpace(value) == "" {
			value = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-26s : %s\n", prefix, label, value))
	}
	return formBoxStyle.Render(strings.TrimSuffix(b.String(), "\n"))
}

func (m *tuiModel) writeStatus(b *strings.Builder) {
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	if m.mode == modeList {
		b.WriteString(statusStyle.Render("a add | e edit | d delete | c complete | s sort | r reload | ? help | q quit"))
		b.WriteString("\n")
	}
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  up/k, down/j   Move selection\n")
	b.WriteString("  g, G           First / last task\n")
	b.WriteString("  a              Add a task\n")
	b.WriteString("  e              Edit the selected task\n")
	b.WriteString("  d              Delete the selected task (asks y/n)\n")
	b.WriteString("  c, space       Mark the selected task as completed\n")
	b.WriteString("  s              Sort by title, due date, priority, event or urgency\n")
	b.WriteString("  r              Reload the list from disk\n")
	b.WriteString("  ?, h           Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
	b.WriteString("In the form: Enter advances and saves on the last field,\n")
	b.WriteString("Tab/Shift+Tab move between fields, Esc cancels.\n\n")
	b.WriteString("Press any key to return.\n")
}
