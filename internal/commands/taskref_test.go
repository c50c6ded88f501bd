package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"ltask/internal/kvstore"
	"ltask/internal/task"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want TaskRef
	}{
		{"position", []string{"5"}, TaskRef{Position: 5}},
		{"multi digit position", []string{"12"}, TaskRef{Position: 12}},
		{"id", []string{"@1700000000000"}, TaskRef{ID: 1700000000000, ByID: true}},
		{"extra args ignored", []string{"3", "extra"}, TaskRef{Position: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskRef(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseTaskRef_Errors(t *testing.T) {
	tests := []struct {
		args    []string
		wantErr string
	}{
		{nil, "task reference required"},
		{[]string{"abc"}, "invalid task reference: abc"},
		{[]string{"a1"}, "invalid task reference: a1"},
		{[]string{"-1"}, "invalid task reference: -1"},
		{[]string{"@"}, "invalid task reference: @"},
		{[]string{"@x1"}, "invalid task reference: @x1"},
		{[]string{"١"}, "invalid task reference: ١"},
		{[]string{"99999999999999999999"}, "invalid task reference: 99999999999999999999"},
	}

	for _, tt := range tests {
		_, err := ParseTaskRef(tt.args)
		if err == nil {
			t.Errorf("%v: expected error", tt.args)
			continue
		}
		if err.Error() != tt.wantErr {
			t.Errorf("%v: expected %q, got %q", tt.args, tt.wantErr, err.Error())
		}
	}

	if _, err := ParseTaskRef(nil); !errors.Is(err, ErrTaskRefRequired) {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestTaskRef_Resolve(t *testing.T) {
	ctx := context.Background()
	next := int64(10)
	clock := func() time.Time {
		ts := time.UnixMilli(next)
		next++
		return ts
	}
	mgr, err := task.Open(ctx, kvstore.NewMemoryStore(), task.WithClock(clock))
	if err != nil {
		t.Fatal(err)
	}
	for _, text := range []string{"a", "b", "c"} {
		mgr.Add(ctx, text)
	}
	mgr.Toggle(ctx, 11)

	tests := []struct {
		ref    TaskRef
		filter task.Filter
		want   int64
	}{
		{TaskRef{Position: 1}, task.FilterAll, 10},
		{TaskRef{Position: 2}, task.FilterActive, 12},
		{TaskRef{Position: 1}, task.FilterCompleted, 11},
		{TaskRef{ID: 99, ByID: true}, task.FilterCompleted, 99},
	}
	for _, tt := range tests {
		got, err := tt.ref.Resolve(mgr, tt.filter)
		if err != nil {
			t.Errorf("%+v in %s: unexpected error %v", tt.ref, tt.filter, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%+v in %s: expected %d, got %d", tt.ref, tt.filter, tt.want, got)
		}
	}

	if _, err := (TaskRef{Position: 3}).Resolve(mgr, task.FilterActive); !errors.Is(err, task.ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange, got %v", err)
	}
}
