package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

var _ repository.TaskRepository = (*TaskRepo)(nil)

// TaskRepo implementación de TaskRepository sobre PostgreSQL.
type TaskRepo struct {
	q Querier
}

// NewTaskRepository construye el adaptador de tareas. Pasar pool o tx (Querier).
func NewTaskRepository(q Querier) *TaskRepo {
	return &TaskRepo{q: q}
}

// Create persiste una tarea nueva.
func (r *TaskRepo) Create(task *entity.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tasks (id, title, notes, status, assignee_id, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	assignee := (*string)(nil)
	if task.AssigneeID != "" {
		assignee = &task.AssigneeID
	}
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.Title, task.Notes, task.Status, assignee,
		task.DueDate, task.CreatedBy, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// GetByID obtiene una tarea por ID.
func (r *TaskRepo) GetByID(id string) (*entity.Task, error) {
	query := `
		SELECT id, title, notes, status, COALESCE(assignee_id, ''), due_date, created_by, created_at, updated_at
		FROM tasks WHERE id = $1`
	var t entity.Task
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Title, &t.Notes, &t.Status, &t.AssigneeID,
		&t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return &t, nil
}

// List lista tareas, filtradas por estado si status no es vacío.
func (r *TaskRepo) List(status string, limit, offset int) ([]*entity.Task, error) {
	query := `
		SELECT id, title, notes, status, COALESCE(assignee_id, ''), due_date, created_by, created_at, updated_at
		FROM tasks
		WHERE ($1 = '' OR status = $1)
		ORDER BY due_date NULLS LAST, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Notes, &t.Status, &t.AssigneeID,
			&t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza la tarea.
func (r *TaskRepo) Update(task *entity.Task) error {
	query := `
		UPDATE tasks SET title = $2, notes = $3, status = $4, assignee_id = $5, due_date = $6, updated_at = $7
		WHERE id = $1`
	assignee := (*string)(nil)
	if task.AssigneeID != "" {
		assignee = &task.AssigneeID
	}
	_, err := r.q.Exec(context.Background(), query,
		task.ID, task.Title, task.Notes, task.Status, assignee, task.DueDate, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// Delete elimina la tarea.
func (r *TaskRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
