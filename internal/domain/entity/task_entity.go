package entity

import "time"

// Task is a unit of work owned by exactly one user. UserID is the canonical
// numeric owner reference; every read and write path is scoped by it.
type Task struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	UserID      int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskPatch carries partial-update fields. Nil means "leave unchanged".
type TaskPatch struct {
	Title       *string
	Description *string
	Completed   *bool
}
