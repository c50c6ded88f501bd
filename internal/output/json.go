package output

import (
	"io"

	"ltask/internal/task"
)

// JSON writes the view in the persisted array shape, newline terminated.
func JSON(w io.Writer, view []task.Task) error {
	data, err := task.Encode(view)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
