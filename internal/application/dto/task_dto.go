package dto

import "time"

// TaskRequest body para crear/actualizar una tarea.
type TaskRequest struct {
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status,omitempty"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
}

// TaskResponse representación de una tarea.
type TaskResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Notes      string     `json:"notes,omitempty"`
	Status     string     `json:"status"`
	AssigneeID string     `json:"assignee_id,omitempty"`
	DueDate    *time.Time `json:"due_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
