package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ltask/internal/task"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Position int   // 1-based position in a filtered view; 0 when ByID
	ID       int64 // task id; set when ByID
	ByID     bool  // true for @<id> references
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → error: task reference required
// 2. All digits (e.g. 3) → position in the current view
// 3. @ followed by digits (e.g. @1700000000000) → task id
// 4. Otherwise → error: invalid task reference: <ref>
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 {
		return TaskRef{}, ErrTaskRefRequired
	}

	ref := args[0]

	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{Position: num}, nil
	}

	if rest, ok := strings.CutPrefix(ref, "@"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", ref)
}

// Resolve turns ref into a task id. Positions are looked up in the view
// selected by f; ids are returned as given, even if no task has them.
func (r TaskRef) Resolve(mgr *task.Manager, f task.Filter) (int64, error) {
	if r.ByID {
		return r.ID, nil
	}
	t, err := mgr.At(f, r.Position)
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
