package task_test

import (
	"errors"
	"reflect"
	"testing"

	"ltask/internal/task"
)

func TestEncode_Empty(t *testing.T) {
	data, err := task.Encode(nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected [], got %q", data)
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	in := []task.Task{
		{ID: 1700000000002, Text: "second", Completed: true},
		{ID: 1700000000001, Text: "first"},
	}
	data, err := task.Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `[{"id":1700000000002,"text":"second","completed":true},{"id":1700000000001,"text":"first","completed":false}]`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}

	out, err := task.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("expected %v, got %v", in, out)
	}
}

func TestDecode_Null(t *testing.T) {
	out, err := task.Decode([]byte("null"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil list, got %#v", out)
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPath string
	}{
		{"not json", `[{`, ""},
		{"object", `{"id":1}`, ""},
		{"string id", `[{"id":"x","text":"a","completed":false}]`, "[0].id"},
		{"fractional id", `[{"id":1.5,"text":"a","completed":false}]`, "[0].id"},
		{"missing text", `[{"id":1,"completed":false}]`, "[0]"},
		{"bad completed", `[{"id":1,"text":"a","completed":false},{"id":2,"text":"b","completed":"yes"}]`, "[1].completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := task.Decode([]byte(tt.input))
			var verrs task.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected ValidationErrors, got %v", err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error at path %q, got %v", tt.wantPath, verrs)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in   string
		want task.Filter
	}{
		{"", task.FilterAll},
		{"all", task.FilterAll},
		{" Active ", task.FilterActive},
		{"completed", task.FilterCompleted},
	}
	for _, tt := range tests {
		got, err := task.ParseFilter(tt.in)
		if err != nil {
			t.Errorf("ParseFilter(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := task.ParseFilter("done"); err == nil {
		t.Error("expected error for unknown filter")
	}
}

func TestFilterNext(t *testing.T) {
	if got := task.FilterAll.Next(); got != task.FilterActive {
		t.Errorf("all.Next() = %s", got)
	}
	if got := task.FilterCompleted.Next(); got != task.FilterAll {
		t.Errorf("completed.Next() = %s", got)
	}
}
