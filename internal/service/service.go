// Package service defines the remote task service that exports write to.
package service

import "context"

// Service is a remote task backend. Exports only ever write to it;
// nothing is read back into the local list.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a task in the specified list.
	CreateTask(ctx context.Context, listID string, t Task) error
}
