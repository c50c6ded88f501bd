package task_test

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"ltask/internal/kvstore"
	"ltask/internal/logging"
	"ltask/internal/task"
	"ltask/internal/testutil"
)

// stepClock returns a clock that advances one millisecond per call.
func stepClock(start int64) func() time.Time {
	next := start
	return func() time.Time {
		t := time.UnixMilli(next)
		next++
		return t
	}
}

func openManager(t *testing.T, store kvstore.Store) *task.Manager {
	t.Helper()
	m, err := task.Open(context.Background(), store, task.WithClock(stepClock(1000)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return m
}

func mustAdd(t *testing.T, m *task.Manager, text string) task.Task {
	t.Helper()
	added, ok, err := m.Add(context.Background(), text)
	if err != nil || !ok {
		t.Fatalf("Add(%q): ok=%v err=%v", text, ok, err)
	}
	return added
}

func TestOpen_AbsentKeyIsEmpty(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())

	if got := m.Tasks(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
	if got := m.CountSummary().String(); got != "0 / 0 tasks" {
		t.Errorf("expected %q, got %q", "0 / 0 tasks", got)
	}
	if m.Filter() != task.FilterAll {
		t.Errorf("expected filter all, got %s", m.Filter())
	}
}

func TestOpen_CorruptValue(t *testing.T) {
	store := testutil.NewFakeStore()
	store.Put("todos", `{"not":"a list"}`)

	_, err := task.Open(context.Background(), store)
	var verrs task.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
}

func TestOpen_StoreError(t *testing.T) {
	store := testutil.NewFakeStore()
	store.GetErr = errors.New("disk gone")

	if _, err := task.Open(context.Background(), store); err == nil {
		t.Fatal("expected error")
	}
}

func TestAdd_IncrementsCounts(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	mustAdd(t, m, "one")
	before := m.CountSummary()

	added := mustAdd(t, m, "  buy milk  ")

	after := m.CountSummary()
	if after.Total != before.Total+1 || after.Active != before.Active+1 {
		t.Errorf("expected counts +1, before=%v after=%v", before, after)
	}
	if added.Text != "buy milk" {
		t.Errorf("expected trimmed text, got %q", added.Text)
	}
	if added.Completed {
		t.Error("new task should be active")
	}
	if added.ID != 1001 {
		t.Errorf("expected id from clock 1001, got %d", added.ID)
	}
}

func TestAdd_WhitespaceOnlyIsIgnored(t *testing.T) {
	store := testutil.NewFakeStore()
	m := openManager(t, store)
	mustAdd(t, m, "keep")
	writes := store.Writes

	for _, text := range []string{"", "   ", "\t\n"} {
		_, ok, err := m.Add(context.Background(), text)
		if err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
		if ok {
			t.Errorf("Add(%q) should be rejected", text)
		}
	}

	if len(m.Tasks()) != 1 {
		t.Errorf("expected list unchanged, got %v", m.Tasks())
	}
	if store.Writes != writes {
		t.Errorf("rejected add should not persist, writes %d -> %d", writes, store.Writes)
	}
}

func TestToggle_TwiceRestores(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	a := mustAdd(t, m, "a")
	ctx := context.Background()

	found, err := m.Toggle(ctx, a.ID)
	if err != nil || !found {
		t.Fatalf("Toggle: found=%v err=%v", found, err)
	}
	if got, _ := m.Find(a.ID); !got.Completed {
		t.Error("expected completed after one toggle")
	}

	m.Toggle(ctx, a.ID)
	if got, _ := m.Find(a.ID); got.Completed {
		t.Error("expected active after two toggles")
	}
}

func TestToggle_UnknownID(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	mustAdd(t, m, "a")
	before := m.Tasks()

	found, err := m.Toggle(context.Background(), 42)
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if found {
		t.Error("expected not found")
	}
	if !reflect.DeepEqual(before, m.Tasks()) {
		t.Errorf("list changed: %v -> %v", before, m.Tasks())
	}
}

func TestDelete_RemovesExactlyOne(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	a := mustAdd(t, m, "a")
	b := mustAdd(t, m, "b")
	c := mustAdd(t, m, "c")

	found, err := m.Delete(context.Background(), b.ID)
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}

	want := []task.Task{a, c}
	if got := m.Tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	found, _ = m.Delete(context.Background(), 999)
	if found {
		t.Error("expected unknown id to be ignored")
	}
	if len(m.Tasks()) != 2 {
		t.Errorf("expected 2 tasks, got %d", len(m.Tasks()))
	}
}

func TestClearCompleted(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	ctx := context.Background()
	a := mustAdd(t, m, "a")
	b := mustAdd(t, m, "b")
	c := mustAdd(t, m, "c")
	m.Toggle(ctx, a.ID)
	m.Toggle(ctx, c.ID)

	removed, err := m.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 removed, got %d", removed)
	}
	if got := m.Tasks(); !reflect.DeepEqual(got, []task.Task{b}) {
		t.Errorf("expected only active task left, got %v", got)
	}
}

func TestFilteredView(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	ctx := context.Background()
	a := mustAdd(t, m, "a")
	b := mustAdd(t, m, "b")
	c := mustAdd(t, m, "c")
	m.Toggle(ctx, b.ID)
	b, _ = m.Find(b.ID)

	tests := []struct {
		filter task.Filter
		want   []task.Task
	}{
		{task.FilterAll, []task.Task{a, b, c}},
		{task.FilterActive, []task.Task{a, c}},
		{task.FilterCompleted, []task.Task{b}},
	}
	for _, tt := range tests {
		m.SetFilter(tt.filter)
		if got := m.FilteredView(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.filter, tt.want, got)
		}
		if got := m.CountSummary(); got != (task.Summary{Active: 2, Total: 3}) {
			t.Errorf("%s: summary should ignore filter, got %v", tt.filter, got)
		}
	}
}

func TestSetFilter_DoesNotPersist(t *testing.T) {
	store := testutil.NewFakeStore()
	m := openManager(t, store)

	m.SetFilter(task.FilterCompleted)

	if store.Writes != 0 {
		t.Errorf("expected no writes, got %d", store.Writes)
	}
}

func TestPersistReloadRoundTrip(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	m := openManager(t, store)
	mustAdd(t, m, "a")
	b := mustAdd(t, m, "b <i>")
	mustAdd(t, m, "c")
	m.Toggle(ctx, b.ID)

	reloaded, err := task.Open(ctx, store)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !reflect.DeepEqual(m.Tasks(), reloaded.Tasks()) {
		t.Errorf("round trip mismatch:\nwant %v\ngot  %v", m.Tasks(), reloaded.Tasks())
	}
}

func TestObserverCalledOnChange(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	var calls int
	var lastView []task.Task
	var lastSum task.Summary
	m.Subscribe(func(view []task.Task, sum task.Summary) {
		calls++
		lastView = view
		lastSum = sum
	})

	a := mustAdd(t, m, "a")
	m.Toggle(ctx, a.ID)
	m.SetFilter(task.FilterActive)

	if calls != 3 {
		t.Errorf("expected 3 notifications, got %d", calls)
	}
	if len(lastView) != 0 {
		t.Errorf("expected empty active view, got %v", lastView)
	}
	if lastSum.String() != "0 / 1 tasks" {
		t.Errorf("expected 0 / 1 tasks, got %s", lastSum)
	}
}

func TestSaveErrorStillNotifies(t *testing.T) {
	store := testutil.NewFakeStore()
	store.SetErr = errors.New("read-only")
	m := openManager(t, store)

	notified := false
	m.Subscribe(func([]task.Task, task.Summary) { notified = true })

	_, ok, err := m.Add(context.Background(), "a")
	if err == nil {
		t.Fatal("expected save error")
	}
	if !ok {
		t.Error("task should still be added in memory")
	}
	if !notified {
		t.Error("expected observers to run")
	}
}

func TestAt(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	a := mustAdd(t, m, "a")
	b := mustAdd(t, m, "b")
	m.Toggle(context.Background(), a.ID)

	got, err := m.At(task.FilterActive, 1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if got.ID != b.ID {
		t.Errorf("expected %v, got %v", b, got)
	}

	for _, n := range []int{0, 2} {
		if _, err := m.At(task.FilterActive, n); !errors.Is(err, task.ErrOutOfRange) {
			t.Errorf("At(%d): expected ErrOutOfRange, got %v", n, err)
		}
	}
}

// The worked example: add, toggle, clear.
func TestExampleSession(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	ctx := context.Background()

	milk := mustAdd(t, m, "buy milk")
	if got := m.Tasks(); len(got) != 1 || got[0].Text != "buy milk" || got[0].Completed {
		t.Fatalf("unexpected list %v", got)
	}
	if got := m.CountSummary().String(); got != "1 / 1 tasks" {
		t.Errorf("expected 1 / 1 tasks, got %q", got)
	}

	m.Toggle(ctx, milk.ID)
	if got := m.CountSummary().String(); got != "0 / 1 tasks" {
		t.Errorf("expected 0 / 1 tasks, got %q", got)
	}

	m.ClearCompleted(ctx)
	if got := m.Tasks(); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

// The returned error carries a failed save; the logger only sees it at debug.
func TestSaveErrorLoggedAtDebug(t *testing.T) {
	store := testutil.NewFakeStore()
	var info, debug bytes.Buffer
	m, err := task.Open(context.Background(), store, task.WithLogger(logging.New(&info, logging.Options{Level: "info"})))
	if err != nil {
		t.Fatal(err)
	}
	store.SetErr = errors.New("disk full")

	added, _, err := m.Add(context.Background(), "x")
	if err == nil {
		t.Fatal("expected save error")
	}
	if info.Len() != 0 {
		t.Errorf("expected nothing at info level, got %q", info.String())
	}

	m.SetLogger(logging.New(&debug, logging.Options{Debug: true}))
	if _, err := m.Toggle(context.Background(), added.ID); err == nil {
		t.Fatal("expected save error")
	}
	if !strings.Contains(debug.String(), `save failed op=toggle err="disk full"`) {
		t.Errorf("expected debug record, got %q", debug.String())
	}
}

func TestSetLogger(t *testing.T) {
	m := openManager(t, kvstore.NewMemoryStore())
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.Options{Debug: true})

	m.SetLogger(logger)
	if m.Logger() != logger {
		t.Error("expected Logger to return the logger just set")
	}
	mustAdd(t, m, "a")
	if !strings.Contains(buf.String(), "saved tasks") {
		t.Errorf("expected saved record, got %q", buf.String())
	}

	m.SetLogger(nil)
	if m.Logger() == nil {
		t.Fatal("nil logger must be replaced")
	}
	buf.Reset()
	mustAdd(t, m, "b")
	if buf.Len() != 0 {
		t.Errorf("expected old logger unused, got %q", buf.String())
	}
}
