package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/loudbaby/easyops-api/internal/application/dto"
	"github.com/loudbaby/easyops-api/internal/domain"
	"github.com/loudbaby/easyops-api/internal/domain/entity"
	"github.com/loudbaby/easyops-api/internal/domain/repository"
)

// TaskUseCase CRUD de tareas operativas.
type TaskUseCase struct {
	taskRepo repository.TaskRepository
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(taskRepo repository.TaskRepository) *TaskUseCase {
	return &TaskUseCase{taskRepo: taskRepo}
}

// Create registra una tarea nueva en estado pendiente.
func (uc *TaskUseCase) Create(userID string, in dto.TaskRequest) (*entity.Task, error) {
	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	task := &entity.Task{
		ID:         uuid.New().String(),
		Title:      in.Title,
		Notes:      in.Notes,
		Status:     entity.TaskStatusPending,
		AssigneeID: in.AssigneeID,
		DueDate:    in.DueDate,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// List lista tareas, opcionalmente filtradas por estado.
func (uc *TaskUseCase) List(status string, limit, offset int) ([]*entity.Task, error) {
	switch status {
	case "", entity.TaskStatusPending, entity.TaskStatusInProgress, entity.TaskStatusDone:
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.taskRepo.List(status, limit, offset)
}

// Update actualiza título, notas, estado, asignado y fecha límite.
func (uc *TaskUseCase) Update(id string, in dto.TaskRequest) (*entity.Task, error) {
	task, err := uc.taskRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != "" {
		task.Title = in.Title
	}
	if in.Status != "" {
		switch in.Status {
		case entity.TaskStatusPending, entity.TaskStatusInProgress, entity.TaskStatusDone:
			task.Status = in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	task.Notes = in.Notes
	task.AssigneeID = in.AssigneeID
	task.DueDate = in.DueDate
	task.UpdatedAt = time.Now()
	if err := uc.taskRepo.Update(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete elimina una tarea.
func (uc *TaskUseCase) Delete(id string) error {
	task, err := uc.taskRepo.GetByID(id)
	if err != nil {
		return err
	}
	if task == nil {
		return domain.ErrNotFound
	}
	return uc.taskRepo.Delete(id)
}
