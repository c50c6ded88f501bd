package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ltask/internal/kvstore"
	"ltask/internal/logging"
	"ltask/internal/task"
	"ltask/internal/testutil"
)

func newTestModel(t *testing.T) (*Model, *task.Manager) {
	t.Helper()
	next := int64(1)
	clock := func() time.Time {
		ts := time.UnixMilli(next)
		next++
		return ts
	}
	mgr, err := task.Open(context.Background(), kvstore.NewMemoryStore(), task.WithClock(clock))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return New(context.Background(), mgr), mgr
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func submit(m *Model, text string) {
	m.input.SetValue(text)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestSubmitAddsTrimmedTaskAndClearsInput(t *testing.T) {
	m, mgr := newTestModel(t)

	submit(m, "  buy milk ")

	tasks := mgr.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "buy milk" {
		t.Fatalf("unexpected tasks %v", tasks)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), "1 / 1 tasks") {
		t.Errorf("expected summary in view:\n%s", m.View())
	}
}

func TestSubmitWhitespaceKeepsInput(t *testing.T) {
	m, mgr := newTestModel(t)

	submit(m, "   ")

	if len(mgr.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %v", mgr.Tasks())
	}
	if m.input.Value() != "   " {
		t.Errorf("expected input untouched, got %q", m.input.Value())
	}
}

func TestLogRedirectedWhileRunning(t *testing.T) {
	var stderr, logFile bytes.Buffer
	store := testutil.NewFakeStore()
	logger := logging.New(&stderr, logging.Options{Debug: true})
	mgr, err := task.Open(context.Background(), store, task.WithLogger(logger))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	stderr.Reset()

	restore := redirectLog(mgr, &logFile)
	m := New(context.Background(), mgr)
	store.SetErr = errors.New("disk full")
	submit(m, "x")

	if stderr.Len() != 0 {
		t.Errorf("expected nothing on stderr while the screen is owned, got %q", stderr.String())
	}
	if !strings.Contains(logFile.String(), "save failed") {
		t.Errorf("expected save failure in log file, got %q", logFile.String())
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Errorf("expected error in view:\n%s", m.View())
	}

	restore()
	if mgr.Logger() != logger {
		t.Error("expected original logger restored")
	}
}

func TestListKeysDispatchToManager(t *testing.T) {
	m, mgr := newTestModel(t)
	submit(m, "a")
	submit(m, "b")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m.Update(runes("j"))
	m.Update(runes("x"))
	if got, _ := mgr.Find(2); !got.Completed {
		t.Errorf("expected b completed, got %+v", got)
	}

	m.Update(runes("3"))
	if mgr.Filter() != task.FilterCompleted {
		t.Errorf("expected completed filter, got %s", mgr.Filter())
	}
	if len(m.view) != 1 || m.view[0].Text != "b" {
		t.Errorf("expected view refreshed to [b], got %v", m.view)
	}

	m.Update(runes("C"))
	if len(mgr.Tasks()) != 1 {
		t.Errorf("expected completed task cleared, got %v", mgr.Tasks())
	}
	if !strings.Contains(m.View(), "No completed tasks.") {
		t.Errorf("expected empty message:\n%s", m.View())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if mgr.Filter() != task.FilterAll {
		t.Errorf("expected tab to cycle to all, got %s", mgr.Filter())
	}

	m.Update(runes("d"))
	if len(mgr.Tasks()) != 0 {
		t.Errorf("expected task deleted, got %v", mgr.Tasks())
	}
}

func TestKeysOnEmptyListAreNoOps(t *testing.T) {
	m, mgr := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	m.Update(runes("x"))
	m.Update(runes("d"))
	m.Update(runes("k"))

	if m.err != nil {
		t.Errorf("unexpected error %v", m.err)
	}
	if len(mgr.Tasks()) != 0 {
		t.Errorf("expected no tasks, got %v", mgr.Tasks())
	}
}

func TestFocusSwitching(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runes("q"))
	if m.input.Value() != "q" {
		t.Errorf("expected q typed into input, got %q", m.input.Value())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.inputFocus {
		t.Error("expected list focus after esc")
	}
	m.Update(runes("a"))
	if !m.inputFocus {
		t.Error("expected input focus after a")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestViewSanitizesText(t *testing.T) {
	m, _ := newTestModel(t)
	submit(m, "evil\x1b[2Jtext")

	if strings.Contains(m.View(), "\x1b[2J") {
		t.Error("control sequence leaked into view")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
