package repository

import "github.com/loudbaby/easyops-api/internal/domain/entity"

// TaskRepository define el puerto de persistencia para tareas.
type TaskRepository interface {
	Create(task *entity.Task) error
	GetByID(id string) (*entity.Task, error)
	// List filtra por estado si status no es vacío.
	List(status string, limit, offset int) ([]*entity.Task, error)
	Update(task *entity.Task) error
	Delete(id string) error
}
