package commands

import (
	"fmt"
	"io"

	"ltask/internal/exitcode"
	"ltask/internal/task"
)

// storageError reports a failed write. The in-memory change already happened.
func storageError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: storage error: %v\n", err)
	return exitcode.BackendError
}

// parseFilterFlag validates a --filter value.
func parseFilterFlag(errOut io.Writer, value string) (task.Filter, bool) {
	f, err := task.ParseFilter(value)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return "", false
	}
	return f, true
}
