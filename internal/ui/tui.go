// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ltask/internal/logging"
	"ltask/internal/output"
	"ltask/internal/task"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	filterStyle   = lipgloss.NewStyle().Padding(0, 1)
	selectedStyle = filterStyle.Reverse(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	emptyStyle    = lipgloss.NewStyle().Italic(true).Faint(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Run starts the interactive interface on the terminal. While the program
// owns the screen, mgr's log records go to logw instead.
func Run(ctx context.Context, mgr *task.Manager, logw io.Writer) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	restore := redirectLog(mgr, logw)
	defer restore()
	program := tea.NewProgram(New(ctx, mgr), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

// redirectLog points mgr's logger at w, keeping its level, until restore
// is called.
func redirectLog(mgr *task.Manager, w io.Writer) (restore func()) {
	prev := mgr.Logger()
	mgr.SetLogger(logging.New(w, logging.Options{Level: prev.GetLevel().String()}))
	return func() { mgr.SetLogger(prev) }
}

// handler runs one Manager operation for a key binding.
type handler struct {
	binding key.Binding
	run     func(m *Model) error
}

// Model is the bubbletea model. It caches the last view and summary the
// Manager published and redraws from them.
type Model struct {
	ctx      context.Context
	mgr      *task.Manager
	keys     keyMap
	handlers []handler
	input    textinput.Model
	help     help.Model

	view       []task.Task
	summary    task.Summary
	cursor     int
	inputFocus bool
	err        error
}

// New builds a Model bound to mgr. The input starts focused.
func New(ctx context.Context, mgr *task.Manager) *Model {
	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.Prompt = "> "
	input.CharLimit = 500
	input.Focus()

	m := &Model{
		ctx:        ctx,
		mgr:        mgr,
		keys:       defaultKeyMap(),
		input:      input,
		help:       help.New(),
		inputFocus: true,
	}
	m.handlers = m.dispatchTable()
	mgr.Subscribe(m.refresh)
	m.refresh(mgr.FilteredView(), mgr.CountSummary())
	return m
}

// dispatchTable maps each list-mode binding to its action.
func (m *Model) dispatchTable() []handler {
	k := m.keys
	return []handler{
		{k.Up, func(m *Model) error { m.moveCursor(-1); return nil }},
		{k.Down, func(m *Model) error { m.moveCursor(1); return nil }},
		{k.Toggle, (*Model).toggleSelected},
		{k.Delete, (*Model).deleteSelected},
		{k.ClearCompleted, func(m *Model) error {
			_, err := m.mgr.ClearCompleted(m.ctx)
			return err
		}},
		{k.FilterAll, func(m *Model) error { m.mgr.SetFilter(task.FilterAll); return nil }},
		{k.FilterActive, func(m *Model) error { m.mgr.SetFilter(task.FilterActive); return nil }},
		{k.FilterCompleted, func(m *Model) error { m.mgr.SetFilter(task.FilterCompleted); return nil }},
		{k.NextFilter, func(m *Model) error { m.mgr.SetFilter(m.mgr.Filter().Next()); return nil }},
		{k.NewTask, func(m *Model) error { m.focusInput(); return nil }},
		{k.Help, func(m *Model) error { m.help.ShowAll = !m.help.ShowAll; return nil }},
	}
}

// refresh is the Manager observer.
func (m *Model) refresh(view []task.Task, sum task.Summary) {
	m.view = view
	m.summary = sum
	if m.cursor >= len(view) {
		m.cursor = len(view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.inputFocus {
			return m.updateInput(msg)
		}
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		for _, h := range m.handlers {
			if key.Matches(msg, h.binding) {
				m.err = h.run(m)
				return m, nil
			}
		}
		return m, nil
	}

	if m.inputFocus {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		_, added, err := m.mgr.Add(m.ctx, m.input.Value())
		m.err = err
		if added {
			m.input.SetValue("")
		}
		return m, nil
	case "esc", "tab":
		m.inputFocus = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) focusInput() {
	m.inputFocus = true
	m.input.Focus()
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.view) {
		m.cursor = len(m.view) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selected() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view) {
		return task.Task{}, false
	}
	return m.view[m.cursor], true
}

func (m *Model) toggleSelected() error {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	_, err := m.mgr.Toggle(m.ctx, t.ID)
	return err
}

func (m *Model) deleteSelected() error {
	t, ok := m.selected()
	if !ok {
		return nil
	}
	_, err := m.mgr.Delete(m.ctx, t.ID)
	return err
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("ltask") + "\n\n")
	m.writeFilters(&b)
	b.WriteString(m.input.View() + "\n\n")
	m.writeTasks(&b)
	b.WriteString("\n" + m.summary.String() + "\n")
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m *Model) writeFilters(b *strings.Builder) {
	labels := map[task.Filter]string{
		task.FilterAll:       "All",
		task.FilterActive:    "Active",
		task.FilterCompleted: "Completed",
	}
	var parts []string
	for _, f := range task.Filters {
		style := filterStyle
		if f == m.mgr.Filter() {
			style = selectedStyle
		}
		parts = append(parts, style.Render(labels[f]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n\n")
}

func (m *Model) writeTasks(b *strings.Builder) {
	if len(m.view) == 0 {
		b.WriteString("  " + emptyStyle.Render(output.EmptyMessage(m.mgr.Filter())) + "\n")
		return
	}
	for i, t := range m.view {
		cursor := "  "
		if !m.inputFocus && i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		text := output.SanitizeText(t.Text)
		if t.Completed {
			box = "[x]"
			text = doneStyle.Render(text)
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", cursor, box, text))
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
