// Package task holds the task list, its filter, and the persisted form of both.
package task

import "fmt"

// Task is a single to-do entry.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Summary counts tasks across the whole list.
type Summary struct {
	Active int
	Total  int
}

// String renders the summary as "x / y tasks".
func (s Summary) String() string {
	return fmt.Sprintf("%d / %d tasks", s.Active, s.Total)
}
