// Package output renders task views for the command line.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"ltask/internal/task"
)

// Empty-state messages, one per filter.
const (
	EmptyAll       = "No tasks yet. Add a new task."
	EmptyActive    = "No active tasks."
	EmptyCompleted = "No completed tasks."
)

// EmptyMessage returns the message shown when the view for f is empty.
func EmptyMessage(f task.Filter) string {
	switch f {
	case task.FilterActive:
		return EmptyActive
	case task.FilterCompleted:
		return EmptyCompleted
	default:
		return EmptyAll
	}
}

// FormatTask formats one task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned number, two spaces, check box, text)
func FormatTask(w io.Writer, num int, t task.Task) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, SanitizeText(t.Text))
}

// FormatSummary writes the "x / y tasks" line.
func FormatSummary(w io.Writer, sum task.Summary) {
	fmt.Fprintln(w, sum.String())
}

// Text writes the view, or the empty message for f, followed by the summary.
func Text(w io.Writer, view []task.Task, f task.Filter, sum task.Summary) {
	if len(view) == 0 {
		fmt.Fprintln(w, EmptyMessage(f))
	}
	for i, t := range view {
		FormatTask(w, i+1, t)
	}
	FormatSummary(w, sum)
}

// SanitizeText makes task text safe to print on a terminal.
// - Escape and control sequences are stripped
// - Newlines and tabs are replaced with spaces
// - Empty or whitespace-only text becomes "(untitled)"
func SanitizeText(text string) string {
	text = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ", "\t", " ").Replace(text)
	text = ansi.Strip(text)
	text = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, text)

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
