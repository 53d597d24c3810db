package entity

import "time"

// Estados de tarea.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task representa una tarea operativa del negocio.
type Task struct {
	ID         string
	Title      string
	Notes      string
	Status     string
	AssigneeID string
	DueDate    *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
