// Package export writes a task view to outside formats and services.
package export

import (
	"context"
	"fmt"
	"strconv"

	"ltask/internal/service"
	"ltask/internal/task"
)

// Formats accepted by the export command.
const (
	FormatPDF    = "pdf"
	FormatGoogle = "google"
)

// Result reports what an export wrote.
type Result struct {
	Exported int
	ListID   string
}

// ToService copies view into the remote list listID, one task per entry,
// in view order. It never reads tasks back.
func ToService(ctx context.Context, svc service.Service, listID string, view []task.Task) (Result, error) {
	res := Result{ListID: listID}
	for _, t := range view {
		status := service.StatusNeedsAction
		if t.Completed {
			status = service.StatusCompleted
		}
		err := svc.CreateTask(ctx, listID, service.Task{
			Title:  t.Text,
			Notes:  "ltask id " + strconv.FormatInt(t.ID, 10),
			Status: status,
		})
		if err != nil {
			return res, fmt.Errorf("export task %d: %w", t.ID, err)
		}
		res.Exported++
	}
	return res, nil
}

// ResolveTarget picks the named remote list, or the default list when name is empty.
func ResolveTarget(ctx context.Context, svc service.Service, name string) (service.TaskList, error) {
	if name == "" {
		return svc.DefaultList(ctx)
	}
	return svc.ResolveList(ctx, name)
}
