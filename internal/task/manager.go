package task

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"ltask/internal/kvstore"
	"ltask/internal/logging"
)

// DefaultKey is the storage key holding the serialized task list.
const DefaultKey = "todos"

// ErrOutOfRange is returned by At for a position outside the view.
var ErrOutOfRange = errors.New("task number out of range")

// Observer is called after every mutation and filter change with the
// current filtered view and the whole-list summary.
type Observer func(view []Task, sum Summary)

// Option configures a Manager.
type Option func(*Manager)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithClock sets the time source used for new task ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the logger for storage and mutation records.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFilter sets the initial filter.
func WithFilter(f Filter) Option {
	return func(m *Manager) {
		m.filter = f
	}
}

// Manager owns the in-memory task list and the current filter, and writes
// the full list back to its store after every mutation.
//
// A Manager is not safe for concurrent use; callers drive it from a single
// goroutine, one user action at a time.
type Manager struct {
	store     kvstore.Store
	key       string
	now       func() time.Time
	logger    *log.Logger
	tasks     []Task
	filter    Filter
	observers []Observer
}

// Open reads the task list from store. An absent key yields an empty list.
func Open(ctx context.Context, store kvstore.Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:  store,
		key:    DefaultKey,
		now:    time.Now,
		logger: logging.Discard(),
		filter: FilterAll,
	}
	for _, opt := range opts {
		opt(m)
	}

	data, ok, err := store.Get(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", m.key, err)
	}
	m.tasks = []Task{}
	if ok {
		tasks, err := Decode(data)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", m.key, err)
		}
		m.tasks = tasks
	}
	m.logger.Debug("loaded tasks", "key", m.key, "count", len(m.tasks))
	return m, nil
}

// Logger returns the logger receiving storage and mutation records.
func (m *Manager) Logger() *log.Logger { return m.logger }

// SetLogger replaces the logger. A nil logger discards records.
func (m *Manager) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = logging.Discard()
	}
	m.logger = logger
}

// Subscribe registers fn to be called after each change.
func (m *Manager) Subscribe(fn Observer) {
	m.observers = append(m.observers, fn)
}

// Add appends a new active task. Whitespace-only text is ignored and
// reported with added == false.
func (m *Manager) Add(ctx context.Context, text string) (t Task, added bool, err error) {
	text = strings.TrimSpace(text)
	if text == "" {
		m.logger.Debug("ignored empty task text")
		return Task{}, false, nil
	}

	t = Task{ID: m.now().UnixMilli(), Text: text}
	m.tasks = append(m.tasks, t)
	return t, true, m.commit(ctx, "add")
}

// Toggle flips the completed flag of the task with id. Unknown ids change
// nothing and report found == false.
func (m *Manager) Toggle(ctx context.Context, id int64) (found bool, err error) {
	for i := range m.tasks {
		if m.tasks[i].ID == id {
			m.tasks[i].Completed = !m.tasks[i].Completed
			found = true
		}
	}
	return found, m.commit(ctx, "toggle")
}

// Delete removes the task with id. Unknown ids change nothing.
func (m *Manager) Delete(ctx context.Context, id int64) (found bool, err error) {
	kept := m.tasks[:0:0]
	for _, t := range m.tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	m.tasks = kept
	return found, m.commit(ctx, "delete")
}

// ClearCompleted removes every completed task and returns how many went.
func (m *Manager) ClearCompleted(ctx context.Context) (int, error) {
	kept := m.tasks[:0:0]
	for _, t := range m.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(m.tasks) - len(kept)
	m.tasks = kept
	return removed, m.commit(ctx, "clear-completed")
}

// SetFilter changes the active filter. The filter is not persisted.
func (m *Manager) SetFilter(f Filter) {
	m.filter = f
	m.notify()
}

// Filter returns the active filter.
func (m *Manager) Filter() Filter { return m.filter }

// Tasks returns a copy of the whole list in insertion order.
func (m *Manager) Tasks() []Task {
	return append([]Task(nil), m.tasks...)
}

// FilteredView returns the tasks matching the active filter, in list order.
func (m *Manager) FilteredView() []Task {
	return m.filter.Apply(m.tasks)
}

// CountSummary counts active and total tasks over the whole list,
// independent of the filter.
func (m *Manager) CountSummary() Summary {
	s := Summary{Total: len(m.tasks)}
	for _, t := range m.tasks {
		if !t.Completed {
			s.Active++
		}
	}
	return s
}

// Find returns the task with id.
func (m *Manager) Find(id int64) (Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// At returns the task at 1-based position n in the view selected by f.
func (m *Manager) At(f Filter, n int) (Task, error) {
	view := f.Apply(m.tasks)
	if n < 1 || n > len(view) {
		return Task{}, fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return view[n-1], nil
}

// commit persists the full list and notifies observers. Observers run even
// when the write fails so the view keeps matching memory.
func (m *Manager) commit(ctx context.Context, op string) error {
	err := m.save(ctx)
	if err != nil {
		m.logger.Debug("save failed", "op", op, "err", err)
		err = fmt.Errorf("%s: %w", op, err)
	} else {
		m.logger.Debug("saved tasks", "op", op, "key", m.key, "count", len(m.tasks))
	}
	m.notify()
	return err
}

func (m *Manager) save(ctx context.Context) error {
	data, err := Encode(m.tasks)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, m.key, data)
}

func (m *Manager) notify() {
	if len(m.observers) == 0 {
		return
	}
	view := m.FilteredView()
	sum := m.CountSummary()
	for _, fn := range m.observers {
		fn(view, sum)
	}
}
